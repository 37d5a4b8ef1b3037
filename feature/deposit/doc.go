// Package deposit implements the donation reconciliation engine.
//
// A deposit request issues a per-deposit matching code; the user embeds the
// code (as "<code> <user id>") in the free-text message of an external
// donation. Verification polls the platform's recent donation window,
// matches messages by substring containment of the account's pending code
// (or its legacy email), converts amounts to koin by floor division, and
// commits new orders plus the balance increment in one atomic store call.
//
// # Idempotence
//
// The feed returns the same recent window on every call, so the engine is
// built to be re-run freely: events already in the dedup ledger are skipped,
// and the commit re-derives the credited delta from the rows it actually
// inserted. Two racing passes over the same window credit an event exactly
// once.
//
// # Failure Model
//
//   - ErrUnknownAccount: terminal, the account must request a deposit first.
//   - feed.ErrFeedUnavailable: transient, safe to retry, nothing written.
//   - Store errors during commit roll back completely; no partial credit.
//
// Retries are caller-initiated (the user pressing verify again); the engine
// performs none of its own.
package deposit

// Package account owns per-user account state and the donation dedup ledger.
//
// It provides the Store interface backed by GORM, plus the matching code
// generator used for deposit intents.
//
// # Invariants
//
//   - An account's balance only increases here, and only through
//     RecordOrdersAndCredit.
//   - An order id, once in the ledger, is never credited again — enforced by
//     the primary key on donation_orders, not by any pre-check.
//   - RecordOrdersAndCredit is atomic: the ledger rows and the balance
//     increment commit together or not at all. A partial application would
//     corrupt the ledger irrecoverably (silent credit loss, or double-credit
//     on retry).
//
// The balance update uses a SQL increment expression rather than an absolute
// write, so two passes that both read the same starting balance still
// compose correctly.
package account

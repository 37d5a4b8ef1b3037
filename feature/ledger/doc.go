// Package ledger exports audit snapshots of the donation dedup ledger.
//
// The ledger is the source of truth for what has already been credited;
// operators periodically snapshot it to object storage as CSV, either via
// the export CLI command or the /ledger/export endpoint. Exports are
// write-only artifacts and play no part in reconciliation.
package ledger

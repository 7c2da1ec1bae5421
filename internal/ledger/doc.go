// Package ledger records srtchunk progress in a SQLite database.
//
// Each split pass is stored as a run keyed by a UUID. Validation verdicts are
// attached to the split run whose chunks they checked, one row per chunk that
// is overwritten on re-validation, and join passes record the output they
// produced. The status command reads the ledger back to show how far a
// translation has progressed.
//
// The ledger is advisory: commands log a warning when it cannot be written and
// carry on, so a read-only state directory never blocks splitting or joining.
package ledger

// Package review persists batch diagnostics and the manual-review list in
// SQLite.
//
// The Store records every diagnostic entry a run produces, the documents
// flagged for an operator, the frequency table of unresolved variant
// selectors, and per-stage input digests so unchanged documents can be
// skipped on the next run. Catalog-tolerated verification entries are kept
// so backfill can repair the raw sources later.
//
// Like any local state file, the database can be deleted at any time; it is
// recreated empty on the next run. Schema changes bump schemaVersion in
// schema.go.
package review

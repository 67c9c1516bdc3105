// Package workflow runs collate batches over the document folders.
//
// A Runner executes one stage at a time (ingest, standardize, reconcile,
// patch, verify, backfill) or the combined run stage, which reconciles,
// patches and verifies every document in memory before a single write.
// Documents are sharded across an errgroup of workers; each document is
// processed sequentially and either written whole or not at all.
//
// Diagnostics fan out through a Sink (structured log plus the review store).
// Unresolved alignments spend the shared Budget; the batch halts once the
// budget is exhausted. A flock on the state directory keeps two batches from
// writing the same folders at once.
package workflow

// Package main hosts the collate CLI entrypoint and command graph.
//
// The Cobra command tree maps terminal invocations onto workflow batches
// (ingest, standardize, reconcile, patch, verify, run, backfill), review-list
// maintenance, and read-only inspection of the document folders. It owns
// configuration resolution and logger setup so subcommands stay declarative;
// the reconciliation logic itself lives in the internal packages.
package main

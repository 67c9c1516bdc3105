// Package services defines shared utilities consumed by the pipeline stages
// and the command line.
//
// Key responsibilities:
//   - Context helpers that stamp document names, stage names, and batch run
//     identifiers for logging and diagnostics.
//   - Structured error markers plus the Wrap helper that keep every failure
//     document-scoped and classifiable (skip vs manual review).
//   - Diagnostic codes shared by the log stream and the review store.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability, review routing) stays uniform across the
// pipeline.
package services

// Package logging assembles structured slog loggers for the collate CLI.
//
// Terminal output uses a console handler that lifts the document, line,
// stage and diagnostic code into a one-line header and indents the remaining
// fields beneath it. The batch log file always receives JSON so `collate
// logs` and external tools can filter it. Context helpers tag records with
// the run id, stage and document carried by the context.
package logging

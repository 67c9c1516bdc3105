// Package report renders tables and side-by-side document dumps for the CLI
// and for unresolved-alignment diagnostics.
package report

package review

import (
	"time"

	"collate/internal/services"
)

// Entry is one diagnostic produced while processing a document.
type Entry struct {
	RunID    string
	Document string
	Stage    string
	Code     services.Code
	// Cursor is the 1-based line the entry refers to, zero when it applies
	// to the whole document.
	Cursor    int
	Reference string
	Candidate string
	Detail    string
	CreatedAt time.Time
}

// RunStats summarizes a finished run.
type RunStats struct {
	Processed int
	Written   int
	Skipped   int
	Failed    int
	Halted    bool
}

// Run is a recorded batch run.
type Run struct {
	ID         string
	Stage      string
	StartedAt  time.Time
	FinishedAt time.Time
	RunStats
}

// Flag marks a document for manual review.
type Flag struct {
	Document string
	Stage    string
	Code     services.Code
	Reason   string
	RunID    string
}

// Item is an entry of the manual-review list.
type Item struct {
	Flag
	FlaggedAt  time.Time
	ResolvedAt time.Time
}

// Resolved reports whether an operator has signed the item off.
func (i Item) Resolved() bool {
	return !i.ResolvedAt.IsZero()
}

// Filter narrows ListDiagnostics. Empty fields match everything.
type Filter struct {
	RunID    string
	Document string
	Stage    string
	Code     services.Code
	Limit    int
}

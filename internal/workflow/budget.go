package workflow

import "sync"

// Budget bounds how many unresolved documents a batch surfaces. A limit of
// zero or less never exhausts.
type Budget struct {
	mu    sync.Mutex
	limit int
	used  int
}

// NewBudget returns a budget allowing limit unresolved documents.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Spend charges one unresolved document. surfaced is false when the budget
// was already exhausted, so the document is not reported. exhausted is true
// once the limit has been reached, including by this call.
func (b *Budget) Spend() (surfaced, exhausted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.limit > 0 && b.used >= b.limit {
		return false, true
	}
	b.used++
	return true, b.limit > 0 && b.used >= b.limit
}

// Exhausted reports whether the batch must halt.
func (b *Budget) Exhausted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.limit > 0 && b.used >= b.limit
}

// Used returns the number of surfaced documents.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// Limit returns the configured limit.
func (b *Budget) Limit() int {
	return b.limit
}

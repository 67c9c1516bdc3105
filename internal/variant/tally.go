package variant

import (
	"sort"
	"sync"
)

// TallyEntry is one counted key.
type TallyEntry struct {
	Key   string
	Count int
}

// Tally counts unresolved variant occurrences. Safe for concurrent use; a nil
// Tally discards counts.
type Tally struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add increments key by one.
func (t *Tally) Add(key string) {
	t.AddN(key, 1)
}

// AddN increments key by n.
func (t *Tally) AddN(key string, n int) {
	if t == nil || n == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[key] += n
}

// Count returns the count for key.
func (t *Tally) Count(key string) int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key]
}

// Entries returns the counts ordered by descending count, then key.
func (t *Tally) Entries() []TallyEntry {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	entries := make([]TallyEntry, 0, len(t.counts))
	for key, count := range t.counts {
		entries = append(entries, TallyEntry{Key: key, Count: count})
	}
	t.mu.Unlock()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

package align

// Decision tags the repair applied by one alignment step.
type Decision int

const (
	// ExactMatch accepts the candidate line as equal to the reference line.
	ExactMatch Decision = iota + 1
	// TwoLineMerge joins the candidate line with its successor, emits the
	// reference-length prefix, and carries the rest forward.
	TwoLineMerge
	// CatalogFiller re-appends a trailing catalog glyph the candidate lost.
	CatalogFiller
	// NearMatch accepts the candidate line with one rune of slack.
	NearMatch
	// LookaheadInsert restores a reference line the candidate dropped.
	LookaheadInsert
	// OneToTwoSplit splits one candidate line across two reference lines.
	OneToTwoSplit
	// TwoToOneMerge joins two candidate lines into one reference line.
	TwoToOneMerge
	// HeadInsert restores leading reference lines before the loop starts.
	HeadInsert
	// TailInsert restores trailing reference lines after the loop ends.
	TailInsert
	// Fallback keeps the candidate line unchanged and records an ambiguity.
	Fallback
)

var decisionNames = map[Decision]string{
	ExactMatch:      "exact_match",
	TwoLineMerge:    "two_line_merge",
	CatalogFiller:   "catalog_filler",
	NearMatch:       "near_match",
	LookaheadInsert: "lookahead_insert",
	OneToTwoSplit:   "one_to_two_split",
	TwoToOneMerge:   "two_to_one_merge",
	HeadInsert:      "head_insert",
	TailInsert:      "tail_insert",
	Fallback:        "fallback",
}

func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return "unknown"
}

// Step records one decision. Ref and Cand are the 0-based cursors at the
// time of the decision; Cand is -1 for head and tail repair.
type Step struct {
	Kind    Decision
	Ref     int
	Cand    int
	Gap     int
	Emitted []string
}

// Ambiguity describes a fallback step. Cursor is the 1-based output line.
type Ambiguity struct {
	Cursor    int
	Reference string
	Candidate string
}

// Result is the outcome of an alignment.
type Result struct {
	Lines       []string
	Steps       []Step
	Ambiguities []Ambiguity
	FastPath    bool
}

// Count returns how many steps carry the given decision.
func (r Result) Count(kind Decision) int {
	n := 0
	for _, step := range r.Steps {
		if step.Kind == kind {
			n++
		}
	}
	return n
}

package similarity

import "collate/internal/variant"

// Placeholder is inserted into the shorter side when a one-rune shift
// realigns the comparison.
const Placeholder = '■'

// DefaultGap is the rune-length difference IsSimilar allows by default.
const DefaultGap = 2

// maxLengthDelta bounds the length difference for which a ratio is computed.
const maxLengthDelta = 4

// shortLength is the longest string that qualifies for the relaxed
// short-line thresholds.
const shortLength = 4

// Mode selects the thresholds used by IsSimilar.
type Mode int

const (
	Strict Mode = iota
	Loose
)

func (m Mode) String() string {
	if m == Loose {
		return "loose"
	}
	return "strict"
}

type thresholds struct {
	normal float64
	short  float64
}

func (m Mode) thresholds() thresholds {
	if m == Loose {
		return thresholds{normal: 0.6, short: 0.5}
	}
	return thresholds{normal: 0.75, short: 0.65}
}

// Comparison is the detailed outcome of Compare.
type Comparison struct {
	Matches int
	// Length is the longer original rune length, the ratio denominator.
	Length int
	Ratio  float64
	// Left and Right are the inputs after placeholder insertion.
	Left  string
	Right string
}

// Scorer compares strings under a variant oracle. The zero value compares by
// identity only.
type Scorer struct {
	oracle variant.Oracle
}

// NewScorer returns a scorer backed by oracle; nil means identity.
func NewScorer(oracle variant.Oracle) *Scorer {
	return &Scorer{oracle: oracle}
}

// Equal reports whether a and b are identical or registered variants.
func (s *Scorer) Equal(a, b rune) bool {
	if a == b {
		return true
	}
	if s == nil || s.oracle == nil {
		return false
	}
	return s.oracle.Equivalent(a, b)
}

// Compare walks both strings position by position. On a mismatch it looks one
// rune ahead on either side; if that realigns them a placeholder is inserted
// into the lagging side so later positions line up. The ratio is zero when
// the lengths differ by four or more runes, or both strings are empty.
func (s *Scorer) Compare(t1, t2 string) Comparison {
	a, b := []rune(t1), []rune(t2)
	length := max(len(a), len(b))
	cmp := Comparison{Length: length, Left: t1, Right: t2}
	if length == 0 {
		return cmp
	}
	delta := len(a) - len(b)
	if delta <= -maxLengthDelta || delta >= maxLengthDelta {
		return cmp
	}

	for i := 0; i < length; i++ {
		if i >= len(a) || i >= len(b) {
			continue
		}
		switch {
		case s.Equal(a[i], b[i]):
			cmp.Matches++
		case i+1 < len(a) && s.Equal(a[i+1], b[i]):
			b = insertAt(b, i, Placeholder)
		case i+1 < len(b) && s.Equal(a[i], b[i+1]):
			a = insertAt(a, i, Placeholder)
		}
	}

	cmp.Ratio = float64(cmp.Matches) / float64(length)
	cmp.Left = string(a)
	cmp.Right = string(b)
	return cmp
}

// Score returns the similarity ratio in [0, 1].
func (s *Scorer) Score(t1, t2 string) float64 {
	return s.Compare(t1, t2).Ratio
}

// IsSimilar reports whether the rune lengths differ by at most gap and the
// score clears the mode's threshold. Strings of at most four runes use the
// lower short-line threshold.
func (s *Scorer) IsSimilar(t1, t2 string, mode Mode, gap int) bool {
	l1, l2 := len([]rune(t1)), len([]rune(t2))
	if d := l1 - l2; d < -gap || d > gap {
		return false
	}
	score := s.Score(t1, t2)
	th := mode.thresholds()
	if score >= th.normal {
		return true
	}
	return max(l1, l2) <= shortLength && score >= th.short
}

func insertAt(rs []rune, i int, r rune) []rune {
	rs = append(rs, 0)
	copy(rs[i+1:], rs[i:])
	rs[i] = r
	return rs
}

package variant

// Oracle decides whether two characters are interchangeable orthographic
// variants. Implementations must be symmetric.
type Oracle interface {
	Equivalent(a, b rune) bool
}

// Identity treats only identical runes as equivalent.
type Identity struct{}

// Equivalent implements Oracle.
func (Identity) Equivalent(a, b rune) bool {
	return a == b
}

type pair [2]rune

func orderedPair(a, b rune) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Groups is a symmetric set of registered variant pairs.
type Groups struct {
	pairs map[pair]struct{}
}

// NewGroups returns an empty registry.
func NewGroups() *Groups {
	return &Groups{pairs: make(map[pair]struct{})}
}

// Register marks every rune in group as mutually equivalent.
func (g *Groups) Register(group ...rune) {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if group[i] == group[j] {
				continue
			}
			g.pairs[orderedPair(group[i], group[j])] = struct{}{}
		}
	}
}

// RegisterTable records each variant → standard entry as an equivalent pair.
func (g *Groups) RegisterTable(table Table) {
	for from, to := range table {
		g.Register(from, to)
	}
}

// Len returns the number of registered pairs.
func (g *Groups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.pairs)
}

// Equivalent implements Oracle.
func (g *Groups) Equivalent(a, b rune) bool {
	if a == b {
		return true
	}
	if g == nil {
		return false
	}
	_, ok := g.pairs[orderedPair(a, b)]
	return ok
}

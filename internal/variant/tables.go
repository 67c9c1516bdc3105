package variant

import (
	"strings"
	"unicode"
)

// Table maps a variant character to its standard form.
type Table map[rune]rune

// Lookup returns the standard form of r.
func (t Table) Lookup(r rune) (rune, bool) {
	to, ok := t[r]
	return to, ok
}

// Tiers holds one table per selector digit.
type Tiers map[rune]Table

// Table returns the table selected by digit.
func (t Tiers) Table(digit rune) (Table, bool) {
	table, ok := t[digit]
	return table, ok
}

// CharMap rewrites self-made glyphs to their standard Unicode form.
type CharMap map[rune]string

// Map applies the mapping to every rune of text.
func (m CharMap) Map(text string) string {
	if len(m) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if to, ok := m[r]; ok {
			b.WriteString(to)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Catalog is the set of catalog-index glyphs that may be appended to a page
// line as filler.
type Catalog map[rune]struct{}

// NewCatalog builds a catalog from every non-space rune in text.
func NewCatalog(text string) Catalog {
	c := make(Catalog)
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		c[r] = struct{}{}
	}
	return c
}

// Contains reports whether r is a catalog glyph.
func (c Catalog) Contains(r rune) bool {
	_, ok := c[r]
	return ok
}

// Len returns the number of glyphs.
func (c Catalog) Len() int {
	return len(c)
}

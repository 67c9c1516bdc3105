package variant

import (
	"fmt"
	"strings"

	"collate/internal/services"
)

// Issue describes a selector digit that could not be applied.
type Issue struct {
	Code services.Code
	// Position is the 1-based rune offset of the selector in the input.
	Position int
	Selector rune
	// Rune is the character the selector applied to; zero for a leading
	// selector.
	Rune rune
}

// Key returns the tally key "<rune><digit>" used for dictionary curation.
func (i Issue) Key() string {
	if i.Rune == 0 {
		return string(i.Selector)
	}
	return string([]rune{i.Rune, i.Selector})
}

func (i Issue) String() string {
	switch i.Code {
	case services.CodeLeadingSelector:
		return fmt.Sprintf("selector %q at %d has no preceding character", i.Selector, i.Position)
	case services.CodeUnknownTier:
		return fmt.Sprintf("selector %q at %d names no variant table", i.Selector, i.Position)
	default:
		return fmt.Sprintf("no tier %q entry for %q at %d", i.Selector, i.Rune, i.Position)
	}
}

// Resolution is the outcome of resolving one line.
type Resolution struct {
	Text   string
	Issues []Issue
}

type resolverState int

const (
	stateEmpty resolverState = iota
	stateHolding
)

// Resolver rewrites variant-marked text. A selector digit following a
// character replaces that character with its standard form from the selected
// tier; selectors may chain. Selector digits never reach the output.
type Resolver struct {
	tiers Tiers
	tally *Tally
}

// NewResolver builds a resolver over tiers. Unresolved occurrences are
// counted into tally when it is non-nil.
func NewResolver(tiers Tiers, tally *Tally) *Resolver {
	return &Resolver{tiers: tiers, tally: tally}
}

// Resolve runs the state machine over text.
func (r *Resolver) Resolve(text string) Resolution {
	var (
		out    = make([]rune, 0, len(text))
		issues []Issue
		state  = stateEmpty
		pos    int
	)
	for _, ch := range text {
		pos++
		if !isSelector(ch) {
			out = append(out, ch)
			state = stateHolding
			continue
		}
		if state == stateEmpty {
			issues = append(issues, Issue{Code: services.CodeLeadingSelector, Position: pos, Selector: ch})
			continue
		}
		table, ok := r.tiers.Table(ch)
		if !ok {
			issues = append(issues, Issue{Code: services.CodeUnknownTier, Position: pos, Selector: ch, Rune: out[len(out)-1]})
			continue
		}
		held := out[len(out)-1]
		standard, ok := table.Lookup(held)
		if !ok {
			issue := Issue{Code: services.CodeUnresolvedVariant, Position: pos, Selector: ch, Rune: held}
			issues = append(issues, issue)
			r.tally.Add(issue.Key())
			continue
		}
		out[len(out)-1] = standard
	}
	return Resolution{Text: string(out), Issues: issues}
}

// Standardize resolves variants and then applies the char map.
func (r *Resolver) Standardize(text string, charMap CharMap) Resolution {
	res := r.Resolve(text)
	res.Text = charMap.Map(res.Text)
	return res
}

func isSelector(r rune) bool {
	return r >= '0' && r <= '9'
}

// ContainsSelector reports whether any selector digit remains in text.
func ContainsSelector(text string) bool {
	return strings.ContainsAny(text, "0123456789")
}

package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Len returns the number of runes in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// SplitAt splits s after the first n runes. n is clamped to [0, Len(s)].
func SplitAt(s string, n int) (string, string) {
	if n <= 0 {
		return "", s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}

// DropLast returns s without its final rune.
func DropLast(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// Last returns the final rune of s.
func Last(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, true
}

// First returns the leading rune of s.
func First(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

// RuneSet is a membership set over runes.
type RuneSet map[rune]struct{}

// NewRuneSet builds a set from every rune in chars.
func NewRuneSet(chars string) RuneSet {
	set := make(RuneSet, utf8.RuneCountInString(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether r is a member of the set.
func (s RuneSet) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Strip removes whitespace and every rune in drop from s.
func Strip(s string, drop RuneSet) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || drop.Contains(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RemoveSpace removes all whitespace from s.
func RemoveSpace(s string) string {
	return Strip(s, nil)
}

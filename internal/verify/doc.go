// Package verify checks a finished transcript against its reference line by
// line, comparing rune counts once markers and whitespace are removed.
//
// A one-rune difference is tolerated when the longer side ends in a
// catalog-index glyph. Any other difference is a hard mismatch and stops the
// walk for that document, since every later line is likely shifted. Only
// trailing filler glyphs are recognized; a glyph at the start of a line is
// reported as a mismatch.
package verify

// Package textutil provides rune-level helpers shared by the transcript
// reconciliation packages.
//
// Transcripts are dominated by CJK code points outside the BMP, so every
// length, slice, and boundary in this module is measured in runes rather than
// bytes. The helpers here centralize those conversions:
//   - Counting and slicing text by rune position
//   - Splitting a string at a rune boundary (used by line splits and merges)
//   - Stripping a set of runes and all whitespace in one pass
//   - Inspecting the first and last rune of a line
package textutil

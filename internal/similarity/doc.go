// Package similarity scores how closely two lines of text agree, treating
// registered orthographic variants as equal and tolerating a single-rune
// shift at each mismatch.
package similarity

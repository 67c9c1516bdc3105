package transcript

import (
	"regexp"
	"strings"

	"collate/internal/textutil"
)

const (
	markerOpen  = '<'
	markerClose = '>'
)

var (
	// Swastika runs are page furniture except after a digit or one of the
	// glosses that quote the glyph itself.
	leadingSwastika  = regexp.MustCompile(`^([卍卐]+)([^\d字音者相下]|$)`)
	trailingSwastika = regexp.MustCompile(`(^|[^聲作下])([卍卐]+)$`)
	markerSet        = textutil.NewRuneSet(string([]rune{markerOpen, markerClose}))
)

// RuneMapper rewrites runes that have a standard replacement.
type RuneMapper interface {
	Map(text string) string
}

// Cleaner removes markup noise from payloads before they are compared.
type Cleaner struct {
	noise   textutil.RuneSet
	mapper  RuneMapper
	markers bool
}

// CleanerOption customizes a Cleaner.
type CleanerOption func(*Cleaner)

// WithMapper applies a rune mapper after noise removal.
func WithMapper(m RuneMapper) CleanerOption {
	return func(c *Cleaner) {
		c.mapper = m
	}
}

// KeepMarkers preserves annotation markers even when they are listed as noise.
func KeepMarkers() CleanerOption {
	return func(c *Cleaner) {
		c.markers = true
	}
}

// NewCleaner builds a cleaner removing every rune in noise plus whitespace.
func NewCleaner(noise string, opts ...CleanerOption) *Cleaner {
	c := &Cleaner{noise: textutil.NewRuneSet(noise)}
	for _, opt := range opts {
		opt(c)
	}
	if c.markers {
		delete(c.noise, markerOpen)
		delete(c.noise, markerClose)
	}
	return c
}

// Clean strips noise and whitespace, trims swastika runs, then applies the
// mapper when one is configured.
func (c *Cleaner) Clean(text string) string {
	text = textutil.Strip(text, c.noise)
	text = TrimSwastika(text)
	if c.mapper != nil {
		text = c.mapper.Map(text)
	}
	return text
}

// Document cleans every line payload, keeping Raw intact.
func (c *Cleaner) Document(doc Document) Document {
	return doc.Map(c.Clean)
}

// TrimSwastika removes leading and trailing runs of 卍/卐 that are page
// furniture rather than text.
func TrimSwastika(text string) string {
	if !strings.ContainsAny(text, "卍卐") {
		return text
	}
	text = leadingSwastika.ReplaceAllString(text, "$2")
	text = trailingSwastika.ReplaceAllString(text, "$1")
	return text
}

// StripMarkers removes annotation markers.
func StripMarkers(text string) string {
	if !strings.ContainsAny(text, "<>") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if markerSet.Contains(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsMarker reports whether r is an annotation marker.
func IsMarker(r rune) bool {
	return markerSet.Contains(r)
}

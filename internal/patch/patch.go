package patch

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"collate/internal/services"
	"collate/internal/textutil"
	"collate/internal/transcript"
)

// IntegrityError reports a patched text that no longer matches its clean
// input after markers are removed.
type IntegrityError struct {
	Name   string
	Before int
	After  int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s: merge changed text length %d[before] != %d[after]",
		services.ErrPatchIntegrity, e.Name, e.Before, e.After)
}

// Unwrap exposes the patch marker to errors.Is.
func (e *IntegrityError) Unwrap() error {
	return services.ErrPatchIntegrity
}

// Patcher merges markers into clean text.
type Patcher struct{}

// New returns a Patcher.
func New() *Patcher {
	return &Patcher{}
}

// Patch returns clean with the markers of marked inserted. Markers already in
// clean are dropped first.
func (p *Patcher) Patch(clean, marked string) (string, error) {
	out, _, err := p.patch("", clean, marked)
	return out, err
}

func (p *Patcher) patch(name, clean, marked string) (string, int, error) {
	clean = transcript.StripMarkers(clean)
	a := splitRunes(clean)
	b := splitRunes(marked)

	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)
	var out strings.Builder
	out.Grow(len(clean) + 16)
	inserted := 0
	for _, op := range matcher.GetOpCodes() {
		if op.I1 == op.I2 && op.J2-op.J1 == 1 && isMarker(b[op.J1]) {
			out.WriteString(b[op.J1])
			inserted++
			continue
		}
		for _, r := range a[op.I1:op.I2] {
			out.WriteString(r)
		}
	}

	result := out.String()
	if stripped := transcript.StripMarkers(result); stripped != clean {
		return "", 0, &IntegrityError{Name: name, Before: textutil.Len(clean), After: textutil.Len(stripped)}
	}
	return result, inserted, nil
}

// Result is the outcome of PatchDocument.
type Result struct {
	Document transcript.Document
	Markers  int
}

// PatchDocument flattens both documents, patches, and splits the result back
// into the clean document's lines. A marker that falls on a line boundary
// stays with the preceding line.
func (p *Patcher) PatchDocument(clean, marked transcript.Document) (Result, error) {
	flat, layout := flatten(clean)
	var mb strings.Builder
	for _, line := range marked.Lines {
		mb.WriteString(transcript.FormatRecord(line.No, textutil.RemoveSpace(line.Text)))
	}

	merged, inserted, err := p.patch(clean.Name, flat, mb.String())
	if err != nil {
		return Result{}, err
	}

	texts := layout.split(merged)
	if len(texts) != len(clean.Lines) {
		return Result{}, services.Wrap(services.ErrPatchIntegrity, "patch", "split", fmt.Sprintf("%s: %d lines after merge, expected %d", clean.Name, len(texts), len(clean.Lines)), nil)
	}
	lines := make([]transcript.Line, len(clean.Lines))
	for i, line := range clean.Lines {
		lines[i] = transcript.Line{No: line.No, Text: texts[i], Raw: line.Raw}
	}
	return Result{Document: transcript.Document{Name: clean.Name, Lines: lines}, Markers: inserted}, nil
}

// layout records, per line, the rune offsets of the ordinal prefix and the
// payload end within the flattened text.
type layout struct {
	prefixEnd []int
	lineEnd   []int
}

func flatten(doc transcript.Document) (string, layout) {
	var b strings.Builder
	var l layout
	offset := 0
	for _, line := range doc.Lines {
		prefix := transcript.FormatRecord(line.No, "")
		payload := textutil.RemoveSpace(transcript.StripMarkers(line.Text))
		b.WriteString(prefix)
		b.WriteString(payload)
		offset += textutil.Len(prefix)
		l.prefixEnd = append(l.prefixEnd, offset)
		offset += textutil.Len(payload)
		l.lineEnd = append(l.lineEnd, offset)
	}
	return b.String(), l
}

// split walks the merged text, counting clean runes to find each line's
// prefix and payload. Markers are kept with the line being built; ordinal
// prefix runes are dropped.
func (l layout) split(merged string) []string {
	if len(l.lineEnd) == 0 {
		return nil
	}
	lines := make([]strings.Builder, len(l.lineEnd))
	line, pos := 0, 0
	for _, r := range merged {
		if isMarkerRune(r) {
			lines[line].WriteRune(r)
			continue
		}
		for line < len(l.lineEnd)-1 && pos >= l.lineEnd[line] {
			line++
		}
		if pos >= l.prefixEnd[line] {
			lines[line].WriteRune(r)
		}
		pos++
	}
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = lines[i].String()
	}
	return out
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func isMarker(s string) bool {
	return s == "<" || s == ">"
}

func isMarkerRune(r rune) bool {
	return transcript.IsMarker(r)
}

package transcript

import (
	"bytes"
	"fmt"
	"strings"

	"collate/internal/textutil"
)

// Line is one record of a document.
type Line struct {
	// No is the 1-based ordinal.
	No int
	// Text is the payload used for comparison.
	Text string
	// Raw is the payload as read, before any cleaning.
	Raw string
}

// Record renders the line as "NN:text".
func (l Line) Record() string {
	return FormatRecord(l.No, l.Text)
}

// FormatRecord renders an ordinal and payload as "NN:text".
func FormatRecord(no int, text string) string {
	return fmt.Sprintf("%02d:%s", no, text)
}

// Document is a named, ordered sequence of lines.
type Document struct {
	Name  string
	Lines []Line
}

// FromTexts builds a document numbered 1..n from payloads.
func FromTexts(name string, texts []string) Document {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{No: i + 1, Text: text, Raw: text}
	}
	return Document{Name: name, Lines: lines}
}

// Len returns the number of lines.
func (d Document) Len() int {
	return len(d.Lines)
}

// Texts returns the payload of every line.
func (d Document) Texts() []string {
	out := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		out[i] = line.Text
	}
	return out
}

// CharCount returns the total rune count of all payloads.
func (d Document) CharCount() int {
	total := 0
	for _, line := range d.Lines {
		total += textutil.Len(line.Text)
	}
	return total
}

// NonEmpty returns a copy without lines whose payload is empty. Ordinals are
// left untouched; call Renumber to restore contiguity.
func (d Document) NonEmpty() Document {
	lines := make([]Line, 0, len(d.Lines))
	for _, line := range d.Lines {
		if line.Text != "" {
			lines = append(lines, line)
		}
	}
	return Document{Name: d.Name, Lines: lines}
}

// Renumber returns a copy with ordinals 1..n in line order.
func (d Document) Renumber() Document {
	lines := make([]Line, len(d.Lines))
	for i, line := range d.Lines {
		line.No = i + 1
		lines[i] = line
	}
	return Document{Name: d.Name, Lines: lines}
}

// Contiguous reports whether ordinals run 1..n without gaps.
func (d Document) Contiguous() bool {
	for i, line := range d.Lines {
		if line.No != i+1 {
			return false
		}
	}
	return true
}

// Map returns a copy with fn applied to every payload. Raw is preserved.
func (d Document) Map(fn func(string) string) Document {
	lines := make([]Line, len(d.Lines))
	for i, line := range d.Lines {
		line.Text = fn(line.Text)
		lines[i] = line
	}
	return Document{Name: d.Name, Lines: lines}
}

// Records renders every line as "NN:text".
func (d Document) Records() []string {
	out := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		out[i] = line.Record()
	}
	return out
}

// Bytes renders the document in its on-disk form: one record per line with a
// trailing newline.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range d.Lines {
		buf.WriteString(line.Record())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// String renders the document records joined by newlines.
func (d Document) String() string {
	return strings.Join(d.Records(), "\n")
}

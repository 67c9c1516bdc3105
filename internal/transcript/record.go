package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"

	"collate/internal/services"
)

// MalformedRecord describes a record that could not be parsed.
type MalformedRecord struct {
	// Position is the 1-based physical line in the source.
	Position int
	Text     string
	Err      error
}

// ParseRecord parses a single "NN:text" record. The ordinal may be written
// with full-width digits and colon. Surrounding whitespace of the payload is
// trimmed.
func ParseRecord(record string) (Line, error) {
	record = strings.TrimRight(record, "\r\n")
	idx := strings.IndexAny(record, ":：")
	if idx <= 0 {
		return Line{}, fmt.Errorf("%w: missing ordinal prefix in %q", services.ErrMalformedLine, record)
	}
	prefix := width.Narrow.String(strings.TrimSpace(record[:idx]))
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return Line{}, fmt.Errorf("%w: ordinal %q is not numeric", services.ErrMalformedLine, prefix)
		}
	}
	no, err := strconv.Atoi(prefix)
	if err != nil || no < 1 {
		return Line{}, fmt.Errorf("%w: ordinal %q out of range", services.ErrMalformedLine, prefix)
	}
	sep := ":"
	if strings.HasPrefix(record[idx:], "：") {
		sep = "："
	}
	payload := strings.TrimSpace(record[idx+len(sep):])
	return Line{No: no, Text: payload, Raw: payload}, nil
}

// Parse reads a whole document. UTF-8 and BOM-marked UTF-16 input are both
// accepted. Blank lines are ignored; malformed records are skipped and
// returned alongside the document.
func Parse(name string, r io.Reader) (Document, []MalformedRecord, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	doc := Document{Name: name}
	var malformed []MalformedRecord
	position := 0
	for scanner.Scan() {
		position++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		line, err := ParseRecord(text)
		if err != nil {
			malformed = append(malformed, MalformedRecord{Position: position, Text: text, Err: err})
			continue
		}
		doc.Lines = append(doc.Lines, line)
	}
	if err := scanner.Err(); err != nil {
		return Document{}, nil, fmt.Errorf("read %s: %w", name, err)
	}
	return doc, malformed, nil
}

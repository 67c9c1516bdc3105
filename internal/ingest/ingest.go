package ingest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"collate/internal/services"
	"collate/internal/textutil"
	"collate/internal/transcript"
)

var (
	recordPattern  = regexp.MustCompile(`^K\d+V\d+P\d+[Labcdef]\s?(\d+)L?;(.*)$`)
	starDigit      = regexp.MustCompile(`\*\d`)
	markupNoise    = regexp.MustCompile("[+#ㅜㅡㅋ◦ㅍ◑ㅁ,;*'`\\-\\]\\(\\)/A-Za-z]+")
	digitRun       = regexp.MustCompile(`(\d)\d+`)
	leadingDigits  = regexp.MustCompile(`^\d+`)
	fontNumberFold = strings.NewReplacer("3", "1", "4", "2", "5", "", "6", "", "7", "")
)

// Converter turns raw exports into original-glyph documents.
type Converter struct {
	mapper transcript.RuneMapper
}

// New returns a converter applying mapper to every payload first. A nil
// mapper leaves payloads untouched.
func New(mapper transcript.RuneMapper) *Converter {
	return &Converter{mapper: mapper}
}

// Outcome is the result of converting one document.
type Outcome struct {
	Document  transcript.Document
	Malformed []transcript.MalformedRecord
}

// Valid reports whether every record converted cleanly.
func (o Outcome) Valid() bool {
	return len(o.Malformed) == 0
}

// Convert reads every raw record of a document. Malformed records are
// collected and conversion continues so all of them are reported.
func (c *Converter) Convert(name string, r io.Reader) (Outcome, error) {
	decoder := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	out := Outcome{Document: transcript.Document{Name: name}}
	position := 0
	for scanner.Scan() {
		position++
		record := textutil.RemoveSpace(scanner.Text())
		if record == "" {
			continue
		}
		text, err := c.Record(record)
		if err != nil {
			out.Malformed = append(out.Malformed, transcript.MalformedRecord{Position: position, Text: record, Err: err})
			continue
		}
		if text == "" {
			continue
		}
		out.Document.Lines = append(out.Document.Lines, transcript.Line{No: out.Document.Len() + 1, Text: text, Raw: record})
	}
	if err := scanner.Err(); err != nil {
		return Outcome{}, fmt.Errorf("read %s: %w", name, err)
	}
	return out, nil
}

// Record converts one raw record into a payload. An empty payload with a nil
// error means the record carried no text.
func (c *Converter) Record(record string) (string, error) {
	record = textutil.RemoveSpace(record)
	m := recordPattern.FindStringSubmatch(record)
	if m == nil {
		return "", fmt.Errorf("%w: unrecognized record shape %q", services.ErrMalformedLine, record)
	}
	text := c.Clean(m[2])
	if text != "" && !ValidText(text) {
		return "", fmt.Errorf("%w: unexpected characters in %q", services.ErrMalformedLine, text)
	}
	return fontNumberFold.Replace(text), nil
}

// Clean applies the char map and removes markup from a raw payload.
func (c *Converter) Clean(text string) string {
	if c.mapper != nil {
		text = c.mapper.Map(text)
	}
	text = starDigit.ReplaceAllString(text, "")
	text = markupNoise.ReplaceAllString(text, "")
	text = digitRun.ReplaceAllString(text, "$1")
	text = leadingDigits.ReplaceAllString(text, "")
	text = textutil.RemoveSpace(text)
	return transcript.TrimSwastika(text)
}

// ValidText reports whether every rune is in the accepted repertoire.
func ValidText(text string) bool {
	for _, r := range text {
		if !allowed(r) {
			return false
		}
	}
	return true
}

func allowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r == '〇', r == '&':
		return true
	case r >= 0x3400 && r <= 0xFAD9:
		return true
	case r >= 0x20000 && r <= 0x3134A:
		return true
	case r >= 0x11580 && r <= 0x115FF:
		// Siddham
		return true
	default:
		return false
	}
}

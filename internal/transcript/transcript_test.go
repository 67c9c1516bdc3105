package transcript

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"collate/internal/services"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNo  int
		want    string
		wantErr bool
	}{
		{name: "plain", input: "01:如是我聞", wantNo: 1, want: "如是我聞"},
		{name: "three digits", input: "120:一時", wantNo: 120, want: "一時"},
		{name: "full width prefix", input: "０２：佛在", wantNo: 2, want: "佛在"},
		{name: "trims payload", input: "03:  舍衛國 \r", wantNo: 3, want: "舍衛國"},
		{name: "empty payload", input: "04:", wantNo: 4, want: ""},
		{name: "payload keeps colon", input: "05:a:b", wantNo: 5, want: "a:b"},
		{name: "no prefix", input: "如是我聞", wantErr: true},
		{name: "leading colon", input: ":如是", wantErr: true},
		{name: "letters", input: "ab:如是", wantErr: true},
		{name: "zero", input: "00:如是", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := ParseRecord(tt.input)
			if tt.wantErr {
				if !errors.Is(err, services.ErrMalformedLine) {
					t.Fatalf("expected malformed line error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if line.No != tt.wantNo || line.Text != tt.want {
				t.Fatalf("got (%d, %q), want (%d, %q)", line.No, line.Text, tt.wantNo, tt.want)
			}
		})
	}
}

func TestParseCollectsMalformed(t *testing.T) {
	input := "01:如是\n\nbroken\n02:我聞\n"
	doc, malformed, err := Parse("GL_0001_1_1", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.Texts(); len(got) != 2 || got[0] != "如是" || got[1] != "我聞" {
		t.Fatalf("unexpected texts %q", got)
	}
	if len(malformed) != 1 || malformed[0].Position != 3 || malformed[0].Text != "broken" {
		t.Fatalf("unexpected malformed %+v", malformed)
	}
}

func TestParseUTF16WithBOM(t *testing.T) {
	// "01:一\n" in UTF-16LE with BOM.
	data := []byte{0xFF, 0xFE, '0', 0, '1', 0, ':', 0, 0x00, 0x4E, '\n', 0}
	doc, malformed, err := Parse("x", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(malformed) != 0 {
		t.Fatalf("unexpected malformed %+v", malformed)
	}
	if doc.Len() != 1 || doc.Lines[0].Text != "一" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestDocumentHelpers(t *testing.T) {
	doc := FromTexts("d", []string{"甲乙", "", "丙"})
	if doc.CharCount() != 3 {
		t.Fatalf("CharCount = %d", doc.CharCount())
	}
	compact := doc.NonEmpty()
	if compact.Contiguous() {
		t.Fatal("expected gap after dropping empty line")
	}
	renumbered := compact.Renumber()
	if !renumbered.Contiguous() || renumbered.Len() != 2 {
		t.Fatalf("unexpected renumbered %+v", renumbered)
	}
	if got := string(renumbered.Bytes()); got != "01:甲乙\n02:丙\n" {
		t.Fatalf("Bytes = %q", got)
	}
	if got := FormatRecord(123, "x"); got != "123:x" {
		t.Fatalf("FormatRecord = %q", got)
	}
}

type upperMapper struct{}

func (upperMapper) Map(text string) string {
	return strings.ReplaceAll(text, "乙", "甲")
}

func TestCleaner(t *testing.T) {
	c := NewCleaner("<>()*#", WithMapper(upperMapper{}))
	if got := c.Clean(" 乙(注)* 丙 "); got != "甲注丙" {
		t.Fatalf("Clean = %q", got)
	}
	keep := NewCleaner("<>()", KeepMarkers())
	if got := keep.Clean("甲<乙>(丙)"); got != "甲<乙>丙" {
		t.Fatalf("Clean with markers = %q", got)
	}
	doc := c.Document(FromTexts("d", []string{"乙 "}))
	if doc.Lines[0].Text != "甲" || doc.Lines[0].Raw != "乙 " {
		t.Fatalf("unexpected cleaned line %+v", doc.Lines[0])
	}
}

func TestTrimSwastika(t *testing.T) {
	tests := map[string]string{
		"卍如是卍": "如是",
		"卍":    "",
		"卍字":   "卍字",
		"聲卍":   "聲卍",
		"1卍":   "1",
		"卍1":   "卍1",
		"如是":   "如是",
	}
	for input, want := range tests {
		if got := TrimSwastika(input); got != want {
			t.Errorf("TrimSwastika(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStripMarkers(t *testing.T) {
	if got := StripMarkers("甲<乙>丙"); got != "甲乙丙" {
		t.Fatalf("StripMarkers = %q", got)
	}
	if !IsMarker('<') || IsMarker('甲') {
		t.Fatal("IsMarker misclassified")
	}
}

func TestShardOf(t *testing.T) {
	tests := map[string]string{
		"GL_0001_1_1":     "0001",
		"GL_0001_1_1.txt": "0001",
		"single":          "single",
		"GL_":             "GL_",
	}
	for name, want := range tests {
		if got := ShardOf(name); got != want {
			t.Errorf("ShardOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	folder := store.Folder("Text2Page")
	doc := FromTexts("GL_0002_1_1", []string{"如是", "我聞"})
	if err := folder.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !folder.Exists("GL_0002_1_1") {
		t.Fatal("expected document to exist")
	}
	got, malformed, err := folder.Load("GL_0002_1_1.txt")
	if err != nil || len(malformed) != 0 {
		t.Fatalf("Load: %v %v", err, malformed)
	}
	if got.Name != "GL_0002_1_1" || got.String() != doc.String() {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	names, err := folder.List()
	if err != nil || len(names) != 1 || names[0] != "GL_0002_1_1" {
		t.Fatalf("List = %v, %v", names, err)
	}
}

func TestStoreMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, _, err := store.Read("nope", "GL_0003_1_1"); !errors.Is(err, services.ErrMissingCounterpart) {
		t.Fatalf("expected missing counterpart, got %v", err)
	}
	names, err := store.List("nope")
	if err != nil || len(names) != 0 {
		t.Fatalf("List on missing folder = %v, %v", names, err)
	}
}

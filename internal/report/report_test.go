package report

import (
	"strings"
	"testing"
)

func TestTableRendersHeadersAndRows(t *testing.T) {
	out := Table([]string{"Name", "Count"}, [][]string{{"T01n0001_001", "3"}, {"short"}}, []Alignment{AlignLeft, AlignRight}, StyleRounded)
	for _, want := range []string{"Name", "Count", "T01n0001_001", "short"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "╭") {
		t.Fatalf("expected rounded borders:\n%s", out)
	}
	if strings.Contains(out, "NAME") {
		t.Fatalf("headers should keep their case:\n%s", out)
	}
}

func TestTablePlainStyle(t *testing.T) {
	out := Table([]string{"A"}, [][]string{{"x"}}, nil, StylePlain)
	if strings.Contains(out, "╭") {
		t.Fatalf("plain style should not use box drawing:\n%s", out)
	}
	if !strings.Contains(out, "+") {
		t.Fatalf("plain style should use ascii borders:\n%s", out)
	}
}

func TestTableNoHeaders(t *testing.T) {
	if out := Table(nil, [][]string{{"x"}}, nil, StyleRounded); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestSideBySide(t *testing.T) {
	got := SideBySide([]string{"ref", "cand"}, []string{"a", "b"}, []string{"a"})
	want := "[1]ref\t[2]cand\n[1]a\t[2]a\n[1]b\t[2]\n"
	if got != want {
		t.Fatalf("SideBySide = %q, want %q", got, want)
	}
	if SideBySide(nil) != "" {
		t.Fatal("expected empty output without columns")
	}
	got = SideBySide(nil, []string{"x"}, []string{"y"}, []string{"z"})
	if got != "[1]x\t[2]y\t[3]z\n" {
		t.Fatalf("three columns = %q", got)
	}
}

func TestNumbered(t *testing.T) {
	got := Numbered([]string{"甲", "乙"})
	if got != "01:甲\n02:乙\n" {
		t.Fatalf("Numbered = %q", got)
	}
}

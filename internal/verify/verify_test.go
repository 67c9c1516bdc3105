package verify

import (
	"errors"
	"testing"

	"collate/internal/services"
	"collate/internal/transcript"
	"collate/internal/variant"
)

var catalog = variant.NewCatalog("天地玄黃")

func doc(texts ...string) transcript.Document {
	return transcript.FromTexts("GL_0001_1_1", texts)
}

func TestVerifyPasses(t *testing.T) {
	report := New(catalog, false).Verify(doc("如是我聞", "一時"), doc("如是<我聞>", "一 時"))
	if !report.OK() || report.Err() != nil {
		t.Fatalf("expected pass, got %+v", report)
	}
	if report.Checked != 2 {
		t.Fatalf("Checked = %d", report.Checked)
	}
}

func TestVerifyToleratesTrailingCatalogGlyph(t *testing.T) {
	tests := []struct {
		name  string
		ref   string
		final string
		side  Side
	}{
		{name: "reference carries glyph", ref: "如是天", final: "如是", side: SideReference},
		{name: "final carries glyph", ref: "如是", final: "如是地", side: SideFinal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := New(catalog, false).Verify(doc(tt.ref), doc(tt.final))
			if !report.OK() {
				t.Fatalf("expected tolerated difference, got mismatch %+v", report.Mismatch)
			}
			if len(report.Tolerances) != 1 || report.Tolerances[0].Side != tt.side || report.Tolerances[0].Line != 1 {
				t.Fatalf("unexpected tolerances %+v", report.Tolerances)
			}
		})
	}
}

func TestVerifyIgnoreCatalogSuppresses(t *testing.T) {
	report := New(catalog, true).Verify(doc("如是天"), doc("如是"))
	if !report.OK() || len(report.Tolerances) != 0 || report.Suppressed != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestVerifyStopsAtFirstMismatch(t *testing.T) {
	ref := doc("如是我聞", "一時佛在", "舍衛國")
	final := doc("如是我聞", "一時", "舍衛國祇樹")
	report := New(catalog, false).Verify(ref, final)
	if report.OK() {
		t.Fatal("expected mismatch")
	}
	m := report.Mismatch
	if m.Line != 2 || m.Delta != 2 || m.Distance != 2 {
		t.Fatalf("unexpected mismatch %+v", m)
	}
	if m.ReferenceNext != "03:舍衛國" || m.FinalNext != "03:舍衛國祇樹" {
		t.Fatalf("unexpected next lines %+v", m)
	}
	if report.Checked != 2 {
		t.Fatalf("verification should stop at the mismatch, checked %d", report.Checked)
	}
	if !errors.Is(report.Err(), services.ErrVerifyMismatch) {
		t.Fatalf("Err = %v", report.Err())
	}
}

func TestVerifyLeadingGlyphIsMismatch(t *testing.T) {
	report := New(catalog, false).Verify(doc("天如是"), doc("如是"))
	if report.Mismatch == nil {
		t.Fatal("leading catalog glyph must not be tolerated")
	}
	if report.Mismatch.ReferenceNext != "$" {
		t.Fatalf("ReferenceNext = %q", report.Mismatch.ReferenceNext)
	}
}

func TestVerifyLineCountMismatch(t *testing.T) {
	report := New(catalog, false).Verify(doc("甲", "乙"), doc("甲"))
	if !report.LineCountMismatch() || report.Checked != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if !errors.Is(report.Err(), services.ErrVerifyMismatch) {
		t.Fatal("line count mismatch must carry the verify marker")
	}
}

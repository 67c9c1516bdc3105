package verify

import (
	"fmt"

	"github.com/antzucaro/matchr"

	"collate/internal/services"
	"collate/internal/textutil"
	"collate/internal/transcript"
)

// Catalog reports whether a rune is a catalog-index glyph.
type Catalog interface {
	Contains(r rune) bool
}

// Side names the document that carries an extra glyph.
type Side string

const (
	SideReference Side = "reference"
	SideFinal     Side = "final"
)

// Tolerance is a one-rune difference explained by a trailing catalog glyph.
type Tolerance struct {
	Line      int
	Reference string
	Final     string
	Glyph     rune
	Side      Side
}

// Mismatch is the first hard difference in a document.
type Mismatch struct {
	Line          int
	Reference     string
	Final         string
	ReferenceNext string
	FinalNext     string
	// Delta is the reference rune count minus the final rune count.
	Delta int
	// Distance is the Levenshtein distance between the two lines.
	Distance int
	// Similarity is the Jaro-Winkler similarity between the two lines.
	Similarity float64
}

// Report is the outcome of verifying one document.
type Report struct {
	Name           string
	ReferenceLines int
	FinalLines     int
	Checked        int
	Tolerances     []Tolerance
	// Suppressed counts tolerances left out of Tolerances because catalog
	// reporting is disabled.
	Suppressed int
	Mismatch   *Mismatch
}

// LineCountMismatch reports whether the documents differ in line count.
func (r Report) LineCountMismatch() bool {
	return r.ReferenceLines != r.FinalLines
}

// OK reports whether the document passed.
func (r Report) OK() bool {
	return !r.LineCountMismatch() && r.Mismatch == nil
}

// Err returns nil for a passing report, otherwise an error carrying
// services.ErrVerifyMismatch.
func (r Report) Err() error {
	switch {
	case r.LineCountMismatch():
		return services.Wrap(services.ErrVerifyMismatch, "verify", "line count", fmt.Sprintf("%s: reference %d != final %d", r.Name, r.ReferenceLines, r.FinalLines), nil)
	case r.Mismatch != nil:
		m := r.Mismatch
		return services.Wrap(services.ErrVerifyMismatch, "verify", fmt.Sprintf("line %d", m.Line), fmt.Sprintf("%s: %s|%s != %s|%s", r.Name, m.Reference, m.ReferenceNext, m.Final, m.FinalNext), nil)
	default:
		return nil
	}
}

// Verifier compares reference and final transcripts.
type Verifier struct {
	catalog       Catalog
	ignoreCatalog bool
}

// New returns a verifier. With ignoreCatalog set, tolerated differences are
// counted but not listed.
func New(catalog Catalog, ignoreCatalog bool) *Verifier {
	return &Verifier{catalog: catalog, ignoreCatalog: ignoreCatalog}
}

// Verify walks both documents pairwise and stops at the first hard mismatch.
func (v *Verifier) Verify(ref, final transcript.Document) Report {
	report := Report{Name: ref.Name, ReferenceLines: ref.Len(), FinalLines: final.Len()}
	if report.LineCountMismatch() {
		return report
	}

	refTexts := normalized(ref)
	finalTexts := normalized(final)
	for i := range refTexts {
		report.Checked++
		r, f := refTexts[i], finalTexts[i]
		delta := textutil.Len(r) - textutil.Len(f)
		if delta == 0 {
			continue
		}
		if tol, ok := v.tolerate(i+1, r, f, delta); ok {
			if v.ignoreCatalog {
				report.Suppressed++
			} else {
				report.Tolerances = append(report.Tolerances, tol)
			}
			continue
		}
		report.Mismatch = &Mismatch{
			Line:          i + 1,
			Reference:     r,
			Final:         f,
			ReferenceNext: next(ref, i),
			FinalNext:     next(final, i),
			Delta:         delta,
			Distance:      matchr.Levenshtein(r, f),
			Similarity:    matchr.JaroWinkler(r, f, false),
		}
		break
	}
	return report
}

func (v *Verifier) tolerate(line int, ref, final string, delta int) (Tolerance, bool) {
	if v.catalog == nil {
		return Tolerance{}, false
	}
	longer, side := final, SideFinal
	switch delta {
	case -1:
	case 1:
		longer, side = ref, SideReference
	default:
		return Tolerance{}, false
	}
	glyph, ok := textutil.Last(longer)
	if !ok || !v.catalog.Contains(glyph) {
		return Tolerance{}, false
	}
	return Tolerance{Line: line, Reference: ref, Final: final, Glyph: glyph, Side: side}, true
}

func normalized(doc transcript.Document) []string {
	out := make([]string, doc.Len())
	for i, line := range doc.Lines {
		out[i] = textutil.RemoveSpace(transcript.StripMarkers(line.Text))
	}
	return out
}

// next returns the record after line i, or "$" at the end of the document.
func next(doc transcript.Document, i int) string {
	if i+1 >= doc.Len() {
		return "$"
	}
	return doc.Lines[i+1].Record()
}

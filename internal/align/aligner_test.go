package align

import (
	"errors"
	"slices"
	"testing"

	"collate/internal/services"
	"collate/internal/similarity"
	"collate/internal/transcript"
	"collate/internal/variant"
)

func newTestAligner() *Aligner {
	return New(similarity.NewScorer(nil), variant.NewCatalog("天地玄黃"))
}

func kinds(res Result) []Decision {
	out := make([]Decision, len(res.Steps))
	for i, step := range res.Steps {
		out[i] = step.Kind
	}
	return out
}

func TestAlignScenarios(t *testing.T) {
	tests := []struct {
		name  string
		ref   []string
		cand  []string
		want  []string
		steps []Decision
		fast  bool
	}{
		{
			name: "equal segmentation takes the fast path",
			ref:  []string{"abc", "def"},
			cand: []string{"ab", "cdef"},
			want: []string{"abc", "def"},
			fast: true,
		},
		{
			name:  "equal segmentation with unequal character totals",
			ref:   []string{"abc", "def", "ghi"},
			cand:  []string{"ab", "cdeф", "ghij"},
			want:  []string{"abc", "deф", "ghij"},
			steps: []Decision{TwoLineMerge, ExactMatch, NearMatch},
		},
		{
			name:  "merged head lines are split by the carried remainder",
			ref:   []string{"x", "abcd"},
			cand:  []string{"xabcd"},
			want:  []string{"x", "abcd"},
			steps: []Decision{TwoLineMerge, ExactMatch},
		},
		{
			name:  "boundary moved across two candidate lines",
			ref:   []string{"abcd", "efgh", "ijkl"},
			cand:  []string{"ab", "cdefgh", "ijk"},
			want:  []string{"abcd", "efgh", "ijk"},
			steps: []Decision{TwoLineMerge, ExactMatch, NearMatch},
		},
		{
			name:  "dropped first reference line",
			ref:   []string{"如是我聞一時", "佛在舍衛國祇", "樹給孤獨園與", "大比丘眾千二", "百五十人俱"},
			cand:  []string{"佛在舍衛國祇", "樹給孤獨園與", "大比丘眾千二", "百五十人俱"},
			want:  []string{"如是我聞一時", "佛在舍衛國祇", "樹給孤獨園與", "大比丘眾千二", "百五十人俱"},
			steps: []Decision{HeadInsert, ExactMatch, ExactMatch, ExactMatch, ExactMatch},
		},
		{
			name:  "dropped middle reference line",
			ref:   []string{"甲乙丙丁", "戊己庚辛", "壬癸子丑", "寅卯辰巳"},
			cand:  []string{"甲乙丙丁", "壬癸子丑", "寅卯辰巳"},
			want:  []string{"甲乙丙丁", "戊己庚辛", "壬癸子丑", "寅卯辰巳"},
			steps: []Decision{ExactMatch, LookaheadInsert, ExactMatch},
		},
		{
			name:  "catalog glyph restored",
			ref:   []string{"如是我聞天", "一時佛在"},
			cand:  []string{"如是我聞", "一時佛在"},
			want:  []string{"如是我聞天", "一時佛在"},
			steps: []Decision{CatalogFiller, ExactMatch},
		},
		{
			name:  "one candidate line split in two",
			ref:   []string{"甲乙丙", "丁戊己", "庚辛壬癸"},
			cand:  []string{"甲乙丙丁戊己", "庚辛壬癸"},
			want:  []string{"甲乙丙", "丁戊己", "庚辛壬癸"},
			steps: []Decision{OneToTwoSplit, ExactMatch},
		},
		{
			name:  "two candidate lines merged into one",
			ref:   []string{"甲乙丙丁戊己", "庚辛壬癸"},
			cand:  []string{"甲乙丙", "丁戊己", "庚辛壬癸"},
			want:  []string{"甲乙丙丁戊己", "庚辛壬癸"},
			steps: []Decision{TwoToOneMerge, ExactMatch},
		},
		{
			name:  "trailing reference line restored",
			ref:   []string{"甲乙丙丁", "戊己庚辛", "壬癸子丑"},
			cand:  []string{"甲乙丙丁", "戊己庚辛"},
			want:  []string{"甲乙丙丁", "戊己庚辛", "壬癸子丑"},
			steps: []Decision{ExactMatch, ExactMatch, TailInsert},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestAligner().Align("GL_0001_1_1", tt.ref, tt.cand)
			if err != nil {
				t.Fatalf("Align: %v", err)
			}
			if !slices.Equal(res.Lines, tt.want) {
				t.Fatalf("lines = %q, want %q", res.Lines, tt.want)
			}
			if res.FastPath != tt.fast {
				t.Fatalf("FastPath = %v, want %v", res.FastPath, tt.fast)
			}
			if !tt.fast && !slices.Equal(kinds(res), tt.steps) {
				t.Fatalf("steps = %v, want %v", kinds(res), tt.steps)
			}
			if len(res.Ambiguities) != 0 {
				t.Fatalf("unexpected ambiguities %+v", res.Ambiguities)
			}
		})
	}
}

func TestAlignIdempotent(t *testing.T) {
	ref := []string{"甲乙丙", "丁戊己", "庚辛壬癸"}
	first, err := newTestAligner().Align("d", ref, []string{"甲乙丙丁戊己", "庚辛壬癸"})
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	second, err := newTestAligner().Align("d", first.Lines, first.Lines)
	if err != nil {
		t.Fatalf("Align own output: %v", err)
	}
	if !second.FastPath || !slices.Equal(second.Lines, first.Lines) {
		t.Fatalf("expected fast path on own output, got %+v", second)
	}
}

func TestAlignUnresolved(t *testing.T) {
	ref := []string{"甲乙丙丁", "戊己庚辛"}
	cand := []string{"子丑寅卯", "辰巳午未", "申酉戌亥"}
	res, err := newTestAligner().Align("GL_0009_1_1", ref, cand)
	var unresolved *UnresolvedError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedError, got %v", err)
	}
	if !errors.Is(err, services.ErrAlignmentUnresolved) {
		t.Fatal("error must carry the alignment marker")
	}
	if unresolved.Name != "GL_0009_1_1" || len(unresolved.Output) != 3 || len(unresolved.Reference) != 2 {
		t.Fatalf("unexpected error payload %+v", unresolved)
	}
	if res.Count(Fallback) != 3 || len(res.Ambiguities) != 3 {
		t.Fatalf("expected three fallbacks, got %v", kinds(res))
	}
	if res.Ambiguities[0].Cursor != 1 || res.Ambiguities[0].Reference != "甲乙丙丁" || res.Ambiguities[0].Candidate != "子丑寅卯" {
		t.Fatalf("unexpected ambiguity %+v", res.Ambiguities[0])
	}
}

func TestAlignUsesVariantOracle(t *testing.T) {
	groups := variant.NewGroups()
	groups.Register('説', '說')
	a := New(similarity.NewScorer(groups), nil)
	res, err := a.Align("d", []string{"佛說法", "如是"}, []string{"佛説法如是"})
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if !slices.Equal(res.Lines, []string{"佛説法", "如是"}) {
		t.Fatalf("lines = %q", res.Lines)
	}
}

func TestHeadRepairComparesNumberedRecords(t *testing.T) {
	// The payloads share four of seven runes, short of the loose threshold;
	// with their ordinals they share six of ten.
	ref := []string{"子丑寅卯辰巳午", "甲乙丙丁戊己庚", "辛壬癸天地玄黃"}
	cand := []string{"甲乙丙丁XYZ", "辛壬癸天地玄黃"}
	want := []string{"子丑寅卯辰巳午", "甲乙丙丁XYZ", "辛壬癸天地玄黃"}
	a := New(similarity.NewScorer(nil), variant.NewCatalog("天地玄黃"), WithNoise("<>()*#◦◑32z+,'"))

	res, err := a.Align("GL_0001_1_1", ref, cand)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if !slices.Equal(res.Lines, want) {
		t.Fatalf("lines = %q, want %q", res.Lines, want)
	}
	if steps := kinds(res); !slices.Equal(steps, []Decision{HeadInsert, TwoLineMerge, ExactMatch}) {
		t.Fatalf("steps = %v", steps)
	}

	docs, err := a.AlignDocuments(transcript.FromTexts("GL_0001_1_1", ref), transcript.FromTexts("GL_0001_1_1", cand))
	if err != nil {
		t.Fatalf("AlignDocuments: %v", err)
	}
	if !slices.Equal(docs.Lines, want) {
		t.Fatalf("document lines = %q, want %q", docs.Lines, want)
	}
}

func TestHeadRepairDropsNoiseDigitsFromOrdinals(t *testing.T) {
	a := New(nil, nil, WithNoise("32"))
	if got := a.record(2, "甲乙"); got != "0:甲乙" {
		t.Fatalf("record = %q", got)
	}
	if got := New(nil, nil).record(12, "甲乙"); got != "12:甲乙" {
		t.Fatalf("record without noise = %q", got)
	}
}

func TestDecisionString(t *testing.T) {
	if LookaheadInsert.String() != "lookahead_insert" || Decision(0).String() != "unknown" {
		t.Fatal("unexpected decision names")
	}
}

package variant_test

import (
	"strings"
	"testing"

	"collate/internal/services"
	"collate/internal/testsupport"
	"collate/internal/variant"
)

func testTiers() variant.Tiers {
	return variant.Tiers{
		'1': variant.Table{'説': '說', '爲': '為', '說': '说'},
		'2': variant.Table{'觧': '解', '説': '说'},
	}
}

func TestResolverSubstitutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		codes []services.Code
	}{
		{name: "no selectors", input: "如是我聞", want: "如是我聞"},
		{name: "tier one", input: "佛説1法", want: "佛說法"},
		{name: "tier two", input: "觧2脫", want: "解脫"},
		{name: "chained", input: "説11", want: "说"},
		{name: "leading selector", input: "1如是", want: "如是", codes: []services.Code{services.CodeLeadingSelector}},
		{name: "unknown tier", input: "如9是", want: "如是", codes: []services.Code{services.CodeUnknownTier}},
		{name: "missing entry keeps character", input: "如1是", want: "如是", codes: []services.Code{services.CodeUnresolvedVariant}},
		{name: "mixed", input: "2爲1觧1", want: "為觧", codes: []services.Code{services.CodeLeadingSelector, services.CodeUnresolvedVariant}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := variant.NewResolver(testTiers(), nil).Resolve(tt.input)
			if res.Text != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.input, res.Text, tt.want)
			}
			if variant.ContainsSelector(res.Text) {
				t.Fatalf("selector survived in %q", res.Text)
			}
			if len(res.Issues) != len(tt.codes) {
				t.Fatalf("issues = %+v, want codes %v", res.Issues, tt.codes)
			}
			for i, code := range tt.codes {
				if res.Issues[i].Code != code {
					t.Fatalf("issue %d code = %s, want %s", i, res.Issues[i].Code, code)
				}
			}
		})
	}
}

func TestResolverTalliesUnresolved(t *testing.T) {
	tally := variant.NewTally()
	r := variant.NewResolver(testTiers(), tally)
	r.Resolve("如1是")
	r.Resolve("如1")
	r.Resolve("是2")
	if got := tally.Count("如1"); got != 2 {
		t.Fatalf("tally 如1 = %d, want 2", got)
	}
	entries := tally.Entries()
	if len(entries) != 2 || entries[0].Key != "如1" || entries[1].Key != "是2" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestIssueKey(t *testing.T) {
	res := variant.NewResolver(testTiers(), nil).Resolve("如1")
	if len(res.Issues) != 1 || res.Issues[0].Key() != "如1" || res.Issues[0].Position != 2 {
		t.Fatalf("unexpected issue %+v", res.Issues)
	}
	if !strings.Contains(res.Issues[0].String(), "如") {
		t.Fatalf("issue string %q", res.Issues[0].String())
	}
}

func TestStandardizeAppliesCharMap(t *testing.T) {
	r := variant.NewResolver(testTiers(), nil)
	res := r.Standardize("\ue000説1", variant.CharMap{'\ue000': "䓁"})
	if res.Text != "䓁說" {
		t.Fatalf("Standardize = %q", res.Text)
	}
}

func TestGroupsSymmetric(t *testing.T) {
	g := variant.NewGroups()
	g.Register('於', '于', '扵')
	g.RegisterTable(variant.Table{'説': '說'})
	pairs := [][2]rune{{'於', '于'}, {'于', '扵'}, {'說', '説'}}
	for _, p := range pairs {
		if !g.Equivalent(p[0], p[1]) || !g.Equivalent(p[1], p[0]) {
			t.Fatalf("expected %q ~ %q in both directions", p[0], p[1])
		}
	}
	if g.Equivalent('於', '說') {
		t.Fatal("unrelated runes reported equivalent")
	}
	if !g.Equivalent('甲', '甲') {
		t.Fatal("identity must hold")
	}
	var nilGroups *variant.Groups
	if nilGroups.Equivalent('a', 'b') || !nilGroups.Equivalent('a', 'a') {
		t.Fatal("nil groups must fall back to identity")
	}
}

func TestDecodeTable(t *testing.T) {
	table, err := variant.DecodeTable(strings.NewReader(`{"説":"說","爲":"為"}`))
	if err != nil {
		t.Fatalf("DecodeTable: %v", err)
	}
	if to, ok := table.Lookup('説'); !ok || to != '說' {
		t.Fatalf("Lookup = %q, %v", to, ok)
	}
	if _, err := variant.DecodeTable(strings.NewReader(`{"説説":"說"}`)); err == nil {
		t.Fatal("expected error for multi-character key")
	}
}

func TestDecodeCharMapSkipsHeader(t *testing.T) {
	m, err := variant.DecodeCharMap(strings.NewReader("a\tb\n\ue000\t䓁\n\n"))
	if err != nil {
		t.Fatalf("DecodeCharMap: %v", err)
	}
	if len(m) != 1 || m.Map("\ue000x") != "䓁x" {
		t.Fatalf("unexpected map %v", m)
	}
	if _, err := variant.DecodeCharMap(strings.NewReader("h\nbad line\n")); err == nil {
		t.Fatal("expected error for line without tab")
	}
}

func TestCatalog(t *testing.T) {
	c := variant.NewCatalog("天地\n玄黃 \n")
	if c.Len() != 4 || !c.Contains('玄') || c.Contains('\n') {
		t.Fatalf("unexpected catalog %v", c)
	}
}

func TestLoadAssets(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAssets(testsupport.DefaultAssets()))
	assets, err := variant.LoadAssets(cfg)
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}
	if !assets.Catalog.Contains('洪') {
		t.Fatal("catalog missing glyph")
	}
	if len(assets.Tiers) != 2 {
		t.Fatalf("tiers = %d", len(assets.Tiers))
	}
	if !assets.Oracle.Equivalent('於', '于') || !assets.Oracle.Equivalent('說', '説') {
		t.Fatal("oracle missing group or tier pairs")
	}
	if assets.CharMap.Map("\ue000") != "䓁" {
		t.Fatal("char map not loaded")
	}
}

func TestLoadAssetsMissingCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := variant.LoadAssets(cfg); err == nil {
		t.Fatal("expected error without asset files")
	}
}

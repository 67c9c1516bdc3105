package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"collate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.AssetsDir = filepath.Join(base, "assets")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Align.Display = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithErrorBudget overrides the unresolved-document budget.
func WithErrorBudget(budget int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Align.ErrorBudget = budget
	}
}

// WithWorkers overrides the worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.Workers = n
	}
}

// WithSkipFinished toggles digest-based skipping.
func WithSkipFinished(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.SkipFinished = enabled
	}
}

// AssetFixture describes the static tables written by WithAssets.
type AssetFixture struct {
	Catalog string
	Tiers   map[string]map[string]string
	CharMap map[string]string
	Groups  []string
}

// DefaultAssets returns a small but complete table set.
func DefaultAssets() AssetFixture {
	return AssetFixture{
		Catalog: "天地玄黃\n宇宙洪荒\n",
		Tiers: map[string]map[string]string{
			"1": {"説": "說", "爲": "為"},
			"2": {"觧": "解"},
		},
		CharMap: map[string]string{"\ue000": "䓁"},
		Groups:  []string{"於于"},
	}
}

// WithAssets writes the fixture tables into the asset directory and points
// the config at them.
func WithAssets(fixture AssetFixture) ConfigOption {
	return func(b *configBuilder) {
		dir := b.cfg.Paths.AssetsDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("mkdir assets: %v", err)
		}
		write := func(name string, data []byte) {
			if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
				b.t.Fatalf("write asset %s: %v", name, err)
			}
		}

		write(b.cfg.Assets.Catalog, []byte(fixture.Catalog))

		tiers := make(map[string]string, len(fixture.Tiers))
		for selector, table := range fixture.Tiers {
			name := "variants" + selector + ".json"
			data, err := json.Marshal(table)
			if err != nil {
				b.t.Fatalf("encode tier %s: %v", selector, err)
			}
			write(name, data)
			tiers[selector] = name
		}
		b.cfg.Assets.VariantTiers = tiers

		charMap := []byte("glyph\tunicode\n")
		for from, to := range fixture.CharMap {
			charMap = append(charMap, []byte(from+"\t"+to+"\n")...)
		}
		write(b.cfg.Assets.CharMap, charMap)

		var groups []byte
		for _, group := range fixture.Groups {
			groups = append(groups, []byte(group+"\n")...)
		}
		write(b.cfg.Assets.Equivalence, groups)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

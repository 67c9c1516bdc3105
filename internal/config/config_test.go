package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"collate/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("COLLATE_DATA_DIR", "")
	t.Setenv("COLLATE_ASSETS_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if want := filepath.Join(tempHome, "collate", "data"); cfg.Paths.DataDir != want {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "collate"); cfg.Paths.StateDir != want {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, want)
	}
	if cfg.Folders.Reference != "DocxStdTxt" || cfg.Folders.Candidate != "Text2Page0" || cfg.Folders.Reconciled != "Text2Page" {
		t.Fatalf("unexpected folders: %+v", cfg.Folders)
	}
	if cfg.Align.ErrorBudget != 100 {
		t.Fatalf("unexpected error budget: %d", cfg.Align.ErrorBudget)
	}
	if cfg.Assets.VariantTiers["1"] != "variants1.json" || cfg.Assets.VariantTiers["2"] != "variants2.json" {
		t.Fatalf("unexpected variant tiers: %v", cfg.Assets.VariantTiers)
	}
	if cfg.Workflow.Workers != 1 || !cfg.Workflow.SkipFinished {
		t.Fatalf("unexpected workflow defaults: %+v", cfg.Workflow)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if got := cfg.ReviewDBPath(); got != filepath.Join(cfg.Paths.StateDir, "review.db") {
		t.Fatalf("unexpected review db path %q", got)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "collate.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Align struct {
			ErrorBudget int    `toml:"error_budget"`
			Noise       string `toml:"noise"`
		} `toml:"align"`
		Workflow struct {
			Workers int `toml:"workers"`
		} `toml:"workflow"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "corpus")
	custom.Align.ErrorBudget = 3
	custom.Align.Noise = "<>"
	custom.Workflow.Workers = -2
	custom.Logging.Format = "JSON"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COLLATE_DATA_DIR", "")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != custom.Paths.DataDir {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Align.ErrorBudget != 3 || cfg.Align.Noise != "<>" {
		t.Fatalf("unexpected align config %+v", cfg.Align)
	}
	if cfg.Workflow.Workers != 1 {
		t.Fatalf("expected non-positive workers to fall back to 1, got %d", cfg.Workflow.Workers)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lowercased json format, got %q", cfg.Logging.Format)
	}
	if cfg.FolderPath(cfg.Folders.Reference) != filepath.Join(custom.Paths.DataDir, "DocxStdTxt") {
		t.Fatalf("unexpected folder path %q", cfg.FolderPath(cfg.Folders.Reference))
	}
}

func TestEnvOverridesDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COLLATE_DATA_DIR", dir)
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != dir {
		t.Fatalf("expected env data dir %q, got %q", dir, cfg.Paths.DataDir)
	}
}

func TestValidateRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"duplicate folders", func(c *config.Config) { c.Folders.Candidate = c.Folders.Reference }, "must name different folders"},
		{"bad selector", func(c *config.Config) { c.Assets.VariantTiers = map[string]string{"12": "x.json"} }, "single digit"},
		{"empty tier file", func(c *config.Config) { c.Assets.VariantTiers = map[string]string{"1": ""} }, "must name a file"},
		{"missing catalog", func(c *config.Config) { c.Assets.Catalog = "" }, "assets.catalog"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.DataDir = "/data"
			cfg.Paths.AssetsDir = "/assets"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	t.Setenv("COLLATE_DATA_DIR", "")
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Align.Noise != "<>()*#◦◑32z+,'" {
		t.Fatalf("unexpected noise from sample %q", cfg.Align.Noise)
	}
	if cfg.Folders.Finished != "Text2PageF" {
		t.Fatalf("unexpected finished folder %q", cfg.Folders.Finished)
	}
}

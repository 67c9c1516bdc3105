package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"collate/internal/testsupport"
)

const sampleName = "GL_0001_1_1"

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, nil, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	_, _, err = runCLI(t, nil, "config", "init", "--path", target)
	if err == nil || !strings.Contains(err.Error(), "--overwrite") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
	if _, _, err := runCLI(t, nil, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowAndValidate(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	out, _, err := runCLI(t, cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]", "data_dir", cfg.Paths.DataDir, "error_budget")

	out, _, err = runCLI(t, cfg, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestPreflightReportsMissingAssets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, cfg, "preflight")
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, out, "Catalog glyphs", "FAIL")
}

func TestPreflightPassesWithAssets(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAssets(testsupport.DefaultAssets()))
	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, cfg, "preflight")
	if err != nil {
		t.Fatalf("preflight: %v\n%s", err, out)
	}
	requireContains(t, out, "Static tables", "All checks passed")
}

func TestRunCommandWritesReconciledDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAssets(testsupport.DefaultAssets()))
	testsupport.WriteDocument(t, cfg, cfg.Folders.Reference, sampleName, "如是我聞一時", "佛在舍衛國祇")
	testsupport.WriteDocument(t, cfg, cfg.Folders.Candidate, sampleName, "如是<我聞", "一時佛在舍衛國祇>")

	out, _, err := runCLI(t, cfg, "run", "--workers", "1")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	requireContains(t, out, "Run ", "(run)", "Written", "Halted")

	got := testsupport.ReadTexts(t, cfg, cfg.Folders.Reconciled, sampleName)
	if want := []string{"如是<我聞一時", "佛在舍衛國祇>"}; !slices.Equal(got, want) {
		t.Fatalf("reconciled = %q, want %q", got, want)
	}
}

func TestReconcileCommandHaltsOnBudget(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAssets(testsupport.DefaultAssets()))
	for _, name := range []string{"GL_0001_1_1", "GL_0001_1_2"} {
		testsupport.WriteDocument(t, cfg, cfg.Folders.Reference, name, "甲乙丙丁", "戊己庚辛")
		testsupport.WriteDocument(t, cfg, cfg.Folders.Candidate, name, "子丑寅卯", "辰巳午未", "申酉戌亥")
	}

	out, _, err := runCLI(t, cfg, "reconcile", "--budget", "1", "--workers", "1", "--no-display")
	if err == nil {
		t.Fatalf("expected budget exhaustion\n%s", out)
	}
	requireContains(t, out, "Unresolved: GL_0001_1_1")
	if strings.Contains(out, "line count:") {
		t.Fatalf("display dump printed despite --no-display:\n%s", out)
	}

	out, _, err = runCLI(t, cfg, "review", "list")
	if err != nil {
		t.Fatalf("review list: %v", err)
	}
	requireContains(t, out, "GL_0001_1_1", "alignment_unresolved")

	out, _, err = runCLI(t, cfg, "review", "resolve", "GL_0001_1_1", "GL_0009_1_1")
	if err != nil {
		t.Fatalf("review resolve: %v", err)
	}
	requireContains(t, out, "Resolved GL_0001_1_1", "GL_0009_1_1 is not awaiting review")

	out, _, err = runCLI(t, cfg, "review", "clear", "--resolved-only")
	if err != nil {
		t.Fatalf("review clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 review items")
}

func TestStandardizeCommandPrintsTally(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAssets(testsupport.DefaultAssets()))
	testsupport.WriteDocument(t, cfg, cfg.Folders.Original, sampleName, "佛説1法", "爲2如")

	out, _, err := runCLI(t, cfg, "standardize")
	if err != nil {
		t.Fatalf("standardize: %v\n%s", err, out)
	}
	requireContains(t, out, "Unresolved variant", "爲2")

	out, _, err = runCLI(t, cfg, "review", "tally")
	if err != nil {
		t.Fatalf("review tally: %v", err)
	}
	requireContains(t, out, "爲2")
}

func TestInspectCommands(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteDocument(t, cfg, cfg.Folders.Original, sampleName, "佛説法", "如是我聞")
	testsupport.WriteDocument(t, cfg, cfg.Folders.Reference, sampleName, "佛說法", "如是我聞")
	testsupport.WriteDocument(t, cfg, cfg.Folders.Candidate, sampleName, "佛說法如", "是我聞")

	out, _, err := runCLI(t, cfg, "print", sampleName)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if out != "01:佛説法\n02:如是我聞\n" {
		t.Fatalf("print output = %q", out)
	}

	out, _, err = runCLI(t, cfg, "compare", sampleName)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	requireContains(t, out, "[1]original\t[2]reference\t[3]reconciled\n", "[1]01:佛説法\t[2]01:佛說法\t[3]\n")

	out, _, err = runCLI(t, cfg, "find", "說法如")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if out != sampleName+"\t01:佛說法如02:是我聞\n" {
		t.Fatalf("find output = %q", out)
	}

	out, _, err = runCLI(t, cfg, "find", "--absent", "--folder", "reference", "無")
	if err != nil {
		t.Fatalf("find --absent: %v", err)
	}
	if out != sampleName+"\n" {
		t.Fatalf("find --absent output = %q", out)
	}

	if _, _, err := runCLI(t, cfg, "compare", "GL_0404_1_1"); err == nil {
		t.Fatal("expected compare of unknown document to fail")
	}
}

func TestLogsCommandFiltersByDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "WARN diagnostic document=GL_0001_1_1\nINFO batch started\nWARN diagnostic document=GL_0002_1_1\n"
	if err := os.WriteFile(cfg.LogPath(), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, cfg, "logs", "--document", "GL_0002_1_1")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "WARN diagnostic document=GL_0002_1_1\n" {
		t.Fatalf("logs output = %q", out)
	}
}

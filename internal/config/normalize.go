package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFolders()
	c.normalizeAssets()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("COLLATE_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("COLLATE_ASSETS_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.AssetsDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}

	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.AssetsDir, err = expandPath(strings.TrimSpace(c.Paths.AssetsDir)); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFolders() {
	defaults := Default().Folders
	c.Folders.Raw = fallback(c.Folders.Raw, defaults.Raw)
	c.Folders.Original = fallback(c.Folders.Original, defaults.Original)
	c.Folders.Reference = fallback(c.Folders.Reference, defaults.Reference)
	c.Folders.Candidate = fallback(c.Folders.Candidate, defaults.Candidate)
	c.Folders.Reconciled = fallback(c.Folders.Reconciled, defaults.Reconciled)
	c.Folders.Finished = strings.TrimSpace(c.Folders.Finished)
}

func (c *Config) normalizeAssets() {
	c.Assets.Catalog = strings.TrimSpace(c.Assets.Catalog)
	c.Assets.CharMap = strings.TrimSpace(c.Assets.CharMap)
	c.Assets.Equivalence = strings.TrimSpace(c.Assets.Equivalence)
	if len(c.Assets.VariantTiers) == 0 {
		c.Assets.VariantTiers = defaultVariantTiers()
	}
	tiers := make(map[string]string, len(c.Assets.VariantTiers))
	for selector, file := range c.Assets.VariantTiers {
		tiers[strings.TrimSpace(selector)] = strings.TrimSpace(file)
	}
	c.Assets.VariantTiers = tiers
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = defaultWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func fallback(value, def string) string {
	if value = strings.TrimSpace(value); value == "" {
		return def
	}
	return value
}

package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateFolders(); err != nil {
		return err
	}
	if err := c.validateAssets(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set (or export COLLATE_DATA_DIR)")
	}
	if c.Paths.AssetsDir == "" {
		return errors.New("paths.assets_dir must be set (or export COLLATE_ASSETS_DIR)")
	}
	return nil
}

func (c *Config) validateFolders() error {
	folders := []struct{ key, value string }{
		{"folders.raw", c.Folders.Raw},
		{"folders.original", c.Folders.Original},
		{"folders.reference", c.Folders.Reference},
		{"folders.candidate", c.Folders.Candidate},
		{"folders.reconciled", c.Folders.Reconciled},
	}
	seen := make(map[string]string, len(folders))
	for _, folder := range folders {
		if other, ok := seen[folder.value]; ok {
			return fmt.Errorf("%s and %s must name different folders (both %q)", other, folder.key, folder.value)
		}
		seen[folder.value] = folder.key
	}
	return nil
}

func (c *Config) validateAssets() error {
	if c.Assets.Catalog == "" {
		return errors.New("assets.catalog must be set")
	}
	for selector, file := range c.Assets.VariantTiers {
		r, size := utf8.DecodeRuneInString(selector)
		if size != len(selector) || r < '0' || r > '9' {
			return fmt.Errorf("assets.variant_tiers: selector %q must be a single digit", selector)
		}
		if file == "" {
			return fmt.Errorf("assets.variant_tiers.%s must name a file", selector)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

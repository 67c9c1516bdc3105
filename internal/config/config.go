package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the root directories the pipeline reads from and writes to.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	AssetsDir string `toml:"assets_dir"`
	LogDir    string `toml:"log_dir"`
	StateDir  string `toml:"state_dir"`
}

// Folders names the per-stage document folders under DataDir.
type Folders struct {
	Raw        string `toml:"raw"`
	Original   string `toml:"original"`
	Reference  string `toml:"reference"`
	Candidate  string `toml:"candidate"`
	Reconciled string `toml:"reconciled"`
	Finished   string `toml:"finished"`
}

// Assets names the static lookup tables under AssetsDir.
type Assets struct {
	Catalog      string            `toml:"catalog"`
	VariantTiers map[string]string `toml:"variant_tiers"`
	CharMap      string            `toml:"char_map"`
	Equivalence  string            `toml:"equivalence"`
}

// Align contains line reconciliation settings.
type Align struct {
	// ErrorBudget bounds how many unresolved documents a batch surfaces before
	// halting. Zero or negative disables the limit.
	ErrorBudget int `toml:"error_budget"`
	// Display prints a side-by-side dump of unresolved documents.
	Display bool `toml:"display"`
	// Noise lists the markup runes removed before comparing lines.
	Noise string `toml:"noise"`
}

// Verify contains consistency check settings.
type Verify struct {
	IgnoreCatalog bool `toml:"ignore_catalog"`
}

// Workflow contains batch execution settings.
type Workflow struct {
	Workers      int  `toml:"workers"`
	SkipFinished bool `toml:"skip_finished"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for collate.
//
// Configuration sections by subsystem:
//   - Paths: data, asset, log, and state roots
//   - Folders: stage folder names under the data root
//   - Assets: static table file names under the asset root
//   - Align: error budget, diagnostics dump, and noise runes
//   - Verify: catalog tolerance reporting
//   - Workflow: worker count and finished-document skipping
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Folders  Folders  `toml:"folders"`
	Assets   Assets   `toml:"assets"`
	Align    Align    `toml:"align"`
	Verify   Verify   `toml:"verify"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/collate/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("collate.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories collate writes into. The data and
// asset roots are inputs and are left alone.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FolderPath returns the absolute path of a stage folder.
func (c *Config) FolderPath(folder string) string {
	return filepath.Join(c.Paths.DataDir, folder)
}

// AssetPath returns the absolute path of a static table file.
func (c *Config) AssetPath(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.AssetsDir, name)
}

// ReviewDBPath returns the location of the review database.
func (c *Config) ReviewDBPath() string {
	return filepath.Join(c.Paths.StateDir, "review.db")
}

// LockPath returns the batch lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "collate.lock")
}

// LogPath returns the batch log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "collate.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

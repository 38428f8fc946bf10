// Package config loads the optional .depsweep.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1homsi/depsweep/internal/logger"
	"github.com/1homsi/depsweep/internal/usage"
)

// FileName is looked up in the project directory when no path is given.
const FileName = ".depsweep.yaml"

// Config represents the per-project configuration.
type Config struct {
	// SourceDir is scanned recursively, relative to the project directory.
	SourceDir string `yaml:"source_dir"`
	Extension string `yaml:"extension"`
	// Ignored dependencies are never reported.
	Ignored []string `yaml:"ignored"`
	// Allowlist extends or overrides the built-in macro-only table.
	Allowlist usage.Allowlist `yaml:"allowlist"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		SourceDir: "src",
		Extension: usage.Rust().Extension,
	}
}

// Load reads path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrConfigFileParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	logger.Debugf("loaded config %s", path)
	return cfg, nil
}

// LoadDir loads dir/.depsweep.yaml, or returns Default when it does not exist.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceDir) == "" {
		return ErrSourceDirEmpty
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, c.Extension)
	}
	return nil
}

// Package config loads the optional application configuration from
// ~/.config/posturescan/config.yaml. Every value has a sensible zero
// default; a missing file is not an error, and command-line flags always
// take precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	AWS    AWSConfig    `yaml:"aws"    json:"aws"`
	Scan   ScanConfig   `yaml:"scan"   json:"scan"`
	Output OutputConfig `yaml:"output" json:"output"`
}

// AWSConfig holds AWS-specific defaults used when flags are not provided.
type AWSConfig struct {
	// DefaultProfile is used when no --profile flag is provided.
	DefaultProfile string `yaml:"default_profile" json:"default_profile"`

	// DefaultRegions limits the scan when no --region flag is provided.
	// Empty means discover all active regions.
	DefaultRegions []string `yaml:"default_regions" json:"default_regions"`
}

// ScanConfig holds check-execution defaults.
type ScanConfig struct {
	// Parallel runs checks on a bounded worker pool instead of sequentially.
	Parallel bool `yaml:"parallel" json:"parallel"`

	// Workers bounds the pool when Parallel is set. Zero keeps the default.
	Workers int `yaml:"workers" json:"workers"`

	// Hardening also registers the account-hardening check pack.
	Hardening bool `yaml:"hardening" json:"hardening"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	// Format is "table" or "json".
	Format string `yaml:"format" json:"format"`

	// Colored enables ANSI severity colouring in table output.
	Colored bool `yaml:"colored" json:"colored"`
}

// Loader is the interface for reading Config from disk.
type Loader interface {
	// Load reads, parses, and validates the configuration file.
	Load() (*Config, error)

	// ConfigPath returns the absolute path to the configuration file.
	ConfigPath() string
}

// FileLoader is the production Loader. It reads the YAML file at Path.
type FileLoader struct {
	Path string
}

// NewFileLoader returns a FileLoader pointed at the default config path
// under the user's home directory.
func NewFileLoader() (*FileLoader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &FileLoader{Path: filepath.Join(home, ".config", "posturescan", "config.yaml")}, nil
}

// ConfigPath returns the absolute path to the configuration file.
func (l *FileLoader) ConfigPath() string {
	return l.Path
}

// Load reads and parses the configuration file. A missing file returns the
// zero Config without an error.
func (l *FileLoader) Load() (*Config, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", l.Path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.Path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.Path, err)
	}
	return &cfg, nil
}

// validate rejects values outside the supported set.
func (c *Config) validate() error {
	switch c.Output.Format {
	case "", "table", "json":
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", "table", "json", c.Output.Format)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must not be negative, got %d", c.Scan.Workers)
	}
	return nil
}

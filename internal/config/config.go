package config

// Configuration loading and validation for merlinctl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tonylturner/merlinctl/internal/errors"
	"github.com/tonylturner/merlinctl/internal/logging"
	"github.com/tonylturner/merlinctl/internal/programs"
)

// DefaultFileName is the config file looked up in the home directory.
const DefaultFileName = ".merlinctl.yaml"

// Config is the merlinctl configuration file.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Labels  LabelsConfig  `yaml:"labels"`
	Theme   ThemeConfig   `yaml:"theme,omitempty"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
}

// LoggingConfig controls the leveled logger.
type LoggingConfig struct {
	Level     string `yaml:"level"`                 // silent, error, info, verbose, debug
	Format    string `yaml:"format"`                // text or json
	File      string `yaml:"file,omitempty"`        // optional log file
	LogEveryN int    `yaml:"log_every_n,omitempty"` // console sampling for lookup logs
}

// OutputConfig controls how command results are printed.
type OutputConfig struct {
	Format string `yaml:"format"`          // table, json, yaml, toml
	Color  *bool  `yaml:"color,omitempty"` // styled output (default true)
}

// LabelsConfig controls label rendering.
type LabelsConfig struct {
	Fallback string `yaml:"fallback"` // shown when no threshold has been crossed
}

// ThemeConfig overrides color token hex values.
type ThemeConfig struct {
	Colors map[string]string `yaml:"colors,omitempty"`
}

// CatalogConfig selects a catalog file in place of the built-in one.
type CatalogConfig struct {
	File string `yaml:"file,omitempty"`
}

// DefaultPath returns ~/.merlinctl.yaml, or the bare file name when the
// home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// CreateDefaultConfig creates a default configuration
func CreateDefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// WriteDefaultConfig writes a default configuration to a file
func WriteDefaultConfig(path string) error {
	cfg := CreateDefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadConfig loads the configuration from a YAML file. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return CreateDefaultConfig(), nil
		}
		return nil, errors.WrapConfigError(
			fmt.Errorf("read config file: %w", err),
			path,
		)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("parse YAML: %w", err), path)
	}

	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("validate config: %w", err), path)
	}

	return &cfg, nil
}

// ValidateConfig validates a configuration
func ValidateConfig(cfg *Config) error {
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: must be 'text' or 'json', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.LogEveryN < 1 {
		return fmt.Errorf("logging.log_every_n: must be at least 1, got %d", cfg.Logging.LogEveryN)
	}

	if cfg.Output.Format != "table" {
		if _, err := programs.ParseFormat(cfg.Output.Format); err != nil {
			return fmt.Errorf("output.format: must be 'table', 'json', 'yaml' or 'toml', got %q", cfg.Output.Format)
		}
	}

	if strings.TrimSpace(cfg.Labels.Fallback) == "" {
		return fmt.Errorf("labels.fallback: must not be blank")
	}

	for token := range cfg.Theme.Colors {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("theme.colors: empty token name")
		}
	}

	return nil
}

// ColorEnabled reports whether styled output is on.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.LogLevel {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LogLevelInfo
	}
	return level
}

func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.LogEveryN == 0 {
		cfg.Logging.LogEveryN = 1
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}
	cfg.Output.Color = boolPtrDefault(cfg.Output.Color, true)
	if cfg.Labels.Fallback == "" {
		cfg.Labels.Fallback = programs.DefaultFallbackLabel
	}
}

func boolPtrDefault(value *bool, def bool) *bool {
	if value != nil {
		return value
	}
	v := def
	return &v
}

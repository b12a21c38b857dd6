// Package config provides configuration management for mdbook-aipr.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vectorinstitute/mdbook-aipr/pkg/aipr"
	"gopkg.in/yaml.v3"
)

// Config holds the mdbook-aipr configuration.
type Config struct {
	WordsPerMinute int    `yaml:"words_per_minute"`
	Footer         *bool  `yaml:"footer,omitempty"`
	FooterPath     string `yaml:"footer_path,omitempty"`
	HeaderTemplate string `yaml:"header_template,omitempty"`
	LinkTemplate   string `yaml:"link_template,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{WordsPerMinute: aipr.WordsPerMinute}
}

// Clone returns a deep copy, so per-book overrides never mutate the
// loaded configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Footer != nil {
		v := *c.Footer
		clone.Footer = &v
	}
	return &clone
}

// FooterEnabled reports whether the footer trailer is appended. The
// footer is on when the key is absent.
func (c *Config) FooterEnabled() bool {
	return c.Footer == nil || *c.Footer
}

// Validate checks that the configuration is usable. Footer and
// template paths are book-root-relative and get checked when read.
func (c *Config) Validate() error {
	if c.WordsPerMinute <= 0 {
		return fmt.Errorf("words_per_minute must be positive, got %d", c.WordsPerMinute)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set;
// unparseable values are ignored.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("AIPR_WORDS_PER_MINUTE"); v != "" {
		if wpm, err := strconv.Atoi(v); err == nil && wpm > 0 {
			c.WordsPerMinute = wpm
		}
	}
	if v := os.Getenv("AIPR_FOOTER"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Footer = &enabled
		}
	}
	if v := os.Getenv("AIPR_FOOTER_PATH"); v != "" {
		c.FooterPath = v
	}
	if v := os.Getenv("AIPR_HEADER_TEMPLATE"); v != "" {
		c.HeaderTemplate = v
	}
	if v := os.Getenv("AIPR_LINK_TEMPLATE"); v != "" {
		c.LinkTemplate = v
	}
}

// FromTable applies overrides from the preprocessor's book.toml
// table, which arrives as decoded JSON. JSON numbers decode as
// float64; only integral values are accepted.
func (c *Config) FromTable(table map[string]interface{}) error {
	if table == nil {
		return nil
	}
	if v, ok := table["words_per_minute"]; ok {
		wpm, err := intValue(v)
		if err != nil {
			return fmt.Errorf("words_per_minute: %w", err)
		}
		c.WordsPerMinute = wpm
	}
	if v, ok := table["footer"]; ok {
		enabled, ok := v.(bool)
		if !ok {
			return fmt.Errorf("footer: expected a boolean, got %T", v)
		}
		c.Footer = &enabled
	}
	if v, ok := table["footer_path"]; ok {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("footer_path: expected a string, got %T", v)
		}
		c.FooterPath = s
	}
	if v, ok := table["header_template"]; ok {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("header_template: expected a string, got %T", v)
		}
		c.HeaderTemplate = s
	}
	if v, ok := table["link_template"]; ok {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("link_template: expected a string, got %T", v)
		}
		c.LinkTemplate = s
	}
	return nil
}

func intValue(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected an integer, got %v", n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mdbook-aipr", "config.yml")
	}

	// Fall back to ~/.config/mdbook-aipr/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mdbook-aipr", "config.yml")
	}

	return filepath.Join(home, ".config", "mdbook-aipr", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with restricted permissions (user read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path. An omitted
// words_per_minute falls back to the default reading speed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.WordsPerMinute == 0 {
		cfg.WordsPerMinute = aipr.WordsPerMinute
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with
// environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If the file doesn't exist, start from the defaults
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

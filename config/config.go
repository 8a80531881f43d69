// Package config holds the settings of the sulk tools, read from sulk.yaml.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/sulk/diag"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "sulk.yaml"

// Config holds all settings of the command line tools and the language
// server. Command line flags override the values read from the file.
type Config struct {
	// Color is one of auto, always or never.
	Color string `yaml:"color"`
	// Format is the diagnostic output format: human or json.
	Format    string `yaml:"format"`
	Verbosity int    `yaml:"verbosity"`
	LogFile   string `yaml:"log_file"`
	// Extensions lists the file extensions watched and served.
	Extensions []string `yaml:"extensions"`
	// MaxErrors stops printing errors after this many; 0 means no limit.
	MaxErrors int `yaml:"max_errors"`

	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-"`
}

func Defaults() *Config {
	return &Config{
		Color:      "auto",
		Format:     "human",
		Extensions: []string{".sol"},
	}
}

// Validate checks the values that cannot be checked by the YAML decoder.
func Validate(cfg *Config) error {
	if _, err := diag.ParseColorMode(cfg.Color); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !slices.Contains([]string{"human", "json"}, cfg.Format) {
		return fmt.Errorf("config: unknown format %q (supported: human, json)", cfg.Format)
	}
	if cfg.MaxErrors < 0 {
		return fmt.Errorf("config: max_errors must not be negative, got %d", cfg.MaxErrors)
	}
	if len(cfg.Extensions) == 0 {
		return fmt.Errorf("config: extensions must not be empty")
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("config: extension %q must start with a dot", ext)
		}
	}
	return nil
}

// HasExtension reports whether path ends in one of the configured extensions.
func (c *Config) HasExtension(path string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

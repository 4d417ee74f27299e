// Package config loads archsketch settings from files and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	DefaultAddress   = ":5000"
	DefaultEntryPage = "system-design.html"
	DefaultModel     = "gemini-2.5-flash"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the built-in configuration.
func Default() *Config {
	validate := false
	return &Config{
		Server: Server{
			Address:       DefaultAddress,
			EntryPage:     DefaultEntryPage,
			ValidateEdges: &validate,
		},
		Gemini: Gemini{
			Model: DefaultModel,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds the effective configuration: defaults, then the optional file
// at path, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileConfig, err := ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = Merge(cfg, fileConfig)
	}
	cfg = Merge(cfg, FromEnv(os.LookupEnv))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address must not be empty")
	}
	if entry := c.Server.EntryPage; entry == "" || strings.ContainsAny(entry, `/\`) {
		return fmt.Errorf("invalid entry page %q: must be a file name", entry)
	}
	if c.Server.StaticDir != "" {
		info, err := os.Stat(c.Server.StaticDir)
		if err != nil {
			return fmt.Errorf("invalid static dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("invalid static dir %q: not a directory", c.Server.StaticDir)
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Logging.Format)
	}
	return nil
}

// Save writes the config to path as YAML or JSON, chosen by extension.
func (c *Config) Save(path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	if format == formatJSON {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Write encodes the config as YAML.
func (c *Config) Write(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(c)
}

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

type fileFormat int

const (
	formatYAML fileFormat = iota
	formatJSON
)

// formatOf picks the encoding from the file extension.
func formatOf(path string) (fileFormat, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// ParseFile reads a YAML or JSON config file.
func ParseFile(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if format == formatJSON {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a YAML config. Unknown keys are an error.
func ParseYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseJSON decodes a JSON config. Unknown keys are an error.
func ParseJSON(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

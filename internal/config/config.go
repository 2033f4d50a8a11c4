// Package config loads the space configuration: the tunable dimension
// domain sizes.
//
// Theta and lambda are structural and not configurable; chi size and
// the epsilon catalog size select prefixes of their encoding tables.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phorms/enki/internal/dataset"
)

// Config is the on-disk configuration shape.
//
// Example:
//
//	space:
//	  chi_size: 20
//	  theta_size: 35
//	  lambda_size: 8
//	  epsilon_catalog: 7
type Config struct {
	Space dataset.Space `yaml:"space"`
}

// Default returns the configuration over the full encoding tables.
func Default() Config {
	return Config{Space: dataset.DefaultSpace()}
}

// Load reads and validates a YAML configuration file. Unknown fields
// are rejected so a typoed key fails loudly instead of silently
// falling back to a default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Space.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

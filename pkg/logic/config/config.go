// Package config loads engine and store settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sideloading-Research/Inference/pkg/logic/internalerr"
)

// Config is the top-level configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
}

// EngineConfig controls one inference run.
type EngineConfig struct {
	MaxIterations     int  `yaml:"max_iterations"`
	EnableConjunction bool `yaml:"enable_conjunction"`
}

// StoreConfig configures the optional run archive. An empty path disables
// archiving.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Engine: EngineConfig{MaxIterations: 100},
	}
}

// Load reads a YAML configuration file, applying defaults for omitted
// fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Engine.MaxIterations < 1 {
		return fmt.Errorf("engine.max_iterations must be >= 1, got %d: %w",
			c.Engine.MaxIterations, internalerr.ErrInvalidConfig)
	}
	return nil
}

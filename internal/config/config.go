// Package config loads autofunc command line settings from YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultEngine    = "cpu"
	DefaultPrecision = "float64"
	DefaultLmax      = 4
	DefaultTolerance = 100 // In units of machine epsilon.
)

// ErrUnknownFormat is returned by Load for files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config holds the settings shared by every command.
type Config struct {
	Engine    string         `yaml:"engine" toml:"engine"`
	Precision string         `yaml:"precision" toml:"precision"`
	Lmax      int            `yaml:"lmax" toml:"lmax"`
	Tolerance float64        `yaml:"tolerance" toml:"tolerance"`
	Parallel  ParallelConfig `yaml:"parallel" toml:"parallel"`
}

// ParallelConfig controls the worker pool of the cpu engine.
// Workers <= 0 keeps the engine default of one worker per CPU.
type ParallelConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
	Workers int  `yaml:"workers" toml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine:    DefaultEngine,
		Precision: DefaultPrecision,
		Lmax:      DefaultLmax,
		Tolerance: DefaultTolerance,
		Parallel:  ParallelConfig{Enabled: true},
	}
}

// Load reads path over the defaults. The format is chosen by extension:
// .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks field ranges. Engine and precision names are resolved
// later by the backend package.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Engine) == "" {
		errs = append(errs, errors.New("engine must not be empty"))
	}
	if strings.TrimSpace(c.Precision) == "" {
		errs = append(errs, errors.New("precision must not be empty"))
	}
	if c.Lmax < 0 {
		errs = append(errs, fmt.Errorf("lmax must be non-negative, got %d", c.Lmax))
	}
	if !(c.Tolerance > 0) {
		errs = append(errs, fmt.Errorf("tolerance must be positive, got %v", c.Tolerance))
	}
	if c.Parallel.Workers < 0 {
		errs = append(errs, fmt.Errorf("parallel.workers must be non-negative, got %d", c.Parallel.Workers))
	}
	return errors.Join(errs...)
}

// Workers returns the worker count for the cpu engine: 1 when parallel
// execution is disabled, 0 for the engine default.
func (c *Config) Workers() int {
	if !c.Parallel.Enabled {
		return 1
	}
	return c.Parallel.Workers
}

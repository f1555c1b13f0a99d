// Package config loads the settings of the rbfsvm command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/reggo/rbfsvm/loss"
)

// Config holds all rbfsvm configuration.
type Config struct {
	Model   string        `yaml:"model"`   // Path to the JSON model file
	Seed    uint64        `yaml:"seed"`    // Seed of the synthetic dataset
	Samples int           `yaml:"samples"` // Size of the synthetic dataset
	Grid    GridConfig    `yaml:"grid"`
	Grain   int           `yaml:"grain"` // Rows per batch job, 0 derives it from GOMAXPROCS
	Loss    string        `yaml:"loss"`  // Registered loss used to score predictions
	Logging LoggingConfig `yaml:"logging"`
	Profile ProfileConfig `yaml:"profile"`
}

// GridConfig describes the query grid Linspace(Min, Max, Points).
type GridConfig struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Points int     `yaml:"points"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// ProfileConfig enables runtime profiling of a command.
type ProfileConfig struct {
	Mode string `yaml:"mode"` // "", cpu, mem, block, mutex, trace
	Path string `yaml:"path"` // Directory for the profile, empty for a temporary one
}

// ProfileModes lists the accepted profile modes. The empty mode disables
// profiling.
var ProfileModes = []string{"cpu", "mem", "block", "mutex", "trace"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Model:   "model.json",
		Seed:    42,
		Samples: 50,
		Grid: GridConfig{
			Min:    0,
			Max:    1,
			Points: 101,
		},
		Loss: "squared",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if model := os.Getenv("RBFSVM_MODEL"); model != "" {
		c.Model = model
	}
	if level := os.Getenv("RBFSVM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Samples < 0 {
		return fmt.Errorf("samples must be non-negative, got %d", c.Samples)
	}
	if c.Grid.Points < 2 {
		return fmt.Errorf("grid needs at least two points, got %d", c.Grid.Points)
	}
	if c.Grain < 0 {
		return fmt.Errorf("grain must be non-negative, got %d", c.Grain)
	}
	if _, err := loss.Lookup(c.Loss); err != nil {
		return fmt.Errorf("unknown loss %q: %w", c.Loss, err)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("bad log level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return errors.New("log format must be json or console")
	}
	if c.Profile.Mode != "" && !slices.Contains(ProfileModes, c.Profile.Mode) {
		return fmt.Errorf("unknown profile mode %q", c.Profile.Mode)
	}
	return nil
}

// Logger builds a zap logger from the logging section. verbose forces the
// debug level.
func (c *LoggingConfig) Logger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

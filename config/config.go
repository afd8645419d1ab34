// Package config loads the symval configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Gobd/symvalidation/solver"
	"github.com/Gobd/symvalidation/solver/builtin"
	"github.com/Gobd/symvalidation/solver/z3"
)

// Solver backends.
const (
	BackendBuiltin = "builtin"
	BackendZ3      = "z3"
)

// Config represents the complete symval configuration
type Config struct {
	Solver SolverConfig `yaml:"solver"`
	Log    LogConfig    `yaml:"log"`
}

// SolverConfig selects and tunes the solver backend
type SolverConfig struct {
	// Backend is "builtin" or "z3"
	Backend string `yaml:"backend"`
	// Z3Path is the z3 executable, looked up on PATH when not absolute
	Z3Path string `yaml:"z3_path"`
	// Timeout bounds one validation call
	Timeout time.Duration `yaml:"timeout"`
	// MaxAssignments is the evaluation budget of the builtin backend
	MaxAssignments int `yaml:"max_assignments"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Backend:        BackendBuiltin,
			Z3Path:         z3.DefaultPath,
			Timeout:        z3.DefaultTimeout,
			MaxAssignments: builtin.DefaultMaxAssignments,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Solver.Backend {
	case BackendBuiltin, BackendZ3:
	default:
		return fmt.Errorf("solver.backend must be %q or %q, got %q", BackendBuiltin, BackendZ3, c.Solver.Backend)
	}
	if c.Solver.Backend == BackendZ3 && c.Solver.Z3Path == "" {
		return fmt.Errorf("solver.z3_path is required for the z3 backend")
	}
	if c.Solver.Timeout <= 0 {
		return fmt.Errorf("solver.timeout must be positive")
	}
	if c.Solver.MaxAssignments <= 0 {
		return fmt.Errorf("solver.max_assignments must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file over the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewSolver builds the configured backend.
func (c SolverConfig) NewSolver() solver.Solver {
	if c.Backend == BackendZ3 {
		return z3.New(z3.WithPath(c.Z3Path), z3.WithTimeout(c.Timeout))
	}
	return builtin.New(builtin.WithMaxAssignments(c.MaxAssignments))
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/symvalidation/solver/builtin"
	"github.com/Gobd/symvalidation/solver/z3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendBuiltin, cfg.Solver.Backend)
	assert.Equal(t, 5*time.Second, cfg.Solver.Timeout)
	assert.IsType(t, &builtin.Solver{}, cfg.Solver.NewSolver())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid default config", func(*Config) {}, ""},
		{"z3 backend", func(c *Config) { c.Solver.Backend = BackendZ3 }, ""},
		{"unknown backend", func(c *Config) { c.Solver.Backend = "cvc5" }, `solver.backend must be "builtin" or "z3", got "cvc5"`},
		{"z3 without path", func(c *Config) { c.Solver.Backend = BackendZ3; c.Solver.Z3Path = "" }, "solver.z3_path is required for the z3 backend"},
		{"zero timeout", func(c *Config) { c.Solver.Timeout = 0 }, "solver.timeout must be positive"},
		{"zero budget", func(c *Config) { c.Solver.MaxAssignments = 0 }, "solver.max_assignments must be positive"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symval.yaml")
	content := `
solver:
  backend: z3
  z3_path: /opt/z3/bin/z3
  timeout: 250ms
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendZ3, cfg.Solver.Backend)
	assert.Equal(t, "/opt/z3/bin/z3", cfg.Solver.Z3Path)
	assert.Equal(t, 250*time.Millisecond, cfg.Solver.Timeout)
	assert.Equal(t, builtin.DefaultMaxAssignments, cfg.Solver.MaxAssignments)
	assert.IsType(t, &z3.Solver{}, cfg.Solver.NewSolver())

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver: [1, 2"), 0o600))
	_, err = LoadFromFile(path)
	require.ErrorContains(t, err, "failed to parse config file")
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "cpu", cfg.Engine)
	assert.Equal(t, "float64", cfg.Precision)
	assert.Equal(t, 0, cfg.Workers())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "autofunc.yaml", `
precision: float32
lmax: 8
parallel:
  enabled: true
  workers: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cpu", cfg.Engine)
	assert.Equal(t, "float32", cfg.Precision)
	assert.Equal(t, 8, cfg.Lmax)
	assert.Equal(t, float64(DefaultTolerance), cfg.Tolerance)
	assert.Equal(t, 4, cfg.Workers())
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "autofunc.toml", `
engine = "cpu"
tolerance = 1000.0

[parallel]
enabled = false
workers = 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultLmax, cfg.Lmax)
	assert.Equal(t, 1000.0, cfg.Tolerance)
	assert.Equal(t, 1, cfg.Workers())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "autofunc.json", `{}`))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(writeFile(t, "bad.yaml", "lmax: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", "lmax = -3"))
	assert.ErrorContains(t, err, "lmax must be non-negative")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Lmax: -1, Tolerance: 0, Parallel: ParallelConfig{Workers: -2}}
	err := cfg.Validate()
	require.Error(t, err)

	for _, msg := range []string{"engine", "precision", "lmax", "tolerance", "parallel.workers"} {
		assert.ErrorContains(t, err, msg)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := Default()
	want.Lmax = 12
	want.Parallel.Workers = 3
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

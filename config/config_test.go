// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinship/config"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinship.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 42
placeholder_count: 5
species:
  - name: human
    life_expectancy: 80
  - name: elf
    life_expectancy: 450
log:
  level: debug
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 5, cfg.PlaceholderCount)
	assert.Equal(t, 80.0, cfg.DefaultLifeExpectancy)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)

	table := cfg.SpeciesTable()
	require.Contains(t, table, "elf")
	assert.Equal(t, 450.0, table["elf"].LifeExpectancy)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinship.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 42\n"), 0o600))
	t.Setenv("KINSHIP_SEED", "7")
	t.Setenv("KINSHIP_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("KINSHIP_SEED", "not-a-number")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "parse env:")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative placeholders", func(c *config.Config) { c.PlaceholderCount = -1 }},
		{"zero life expectancy", func(c *config.Config) { c.DefaultLifeExpectancy = 0 }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "verbose" }},
		{"unnamed species", func(c *config.Config) { c.Species = append(c.Species, config.SpeciesConfig{LifeExpectancy: 3}) }},
		{"duplicate species", func(c *config.Config) { c.Species = append(c.Species, c.Species[0]) }},
		{"metrics without namespace", func(c *config.Config) { c.Metrics.Namespace = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "PORT", "DEV_MODE", "MAX_POSITION_PERCENT",
		"SCORE_ASSET_CLASS_POINTS", "SCORE_REGION_POINTS", "SCORE_SECTOR_POINTS", "SCORE_CONCENTRATION_POINTS",
		"COMPOSITIONS_FILE", "CLASSIFICATIONS_FILE", "EXCHANGE_SUFFIXES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8010, cfg.Port)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 10.0, cfg.MaxPositionPercent)
	assert.Equal(t, ScoringConfig{25, 25, 25, 25}, cfg.Scoring)
	assert.Empty(t, cfg.CompositionsFile)
	assert.Equal(t, []string{".PA", ".AS", ".DE", ".L", ".SW", ".MI"}, cfg.ExchangeSuffixes)
}

func TestLoad_FromEnvironment(t *testing.T) {
	dir := t.TempDir()
	registry := filepath.Join(dir, "compositions.yaml")
	require.NoError(t, os.WriteFile(registry, []byte("compositions: {}\n"), 0o644))

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("MAX_POSITION_PERCENT", "12.5")
	t.Setenv("SCORE_CONCENTRATION_POINTS", "40")
	t.Setenv("COMPOSITIONS_FILE", registry)
	t.Setenv("CLASSIFICATIONS_FILE", "")
	t.Setenv("EXCHANGE_SUFFIXES", "de, .l ,PA")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 12.5, cfg.MaxPositionPercent)
	assert.Equal(t, 40.0, cfg.Scoring.ConcentrationPoints)
	assert.Equal(t, registry, cfg.CompositionsFile)
	assert.Equal(t, []string{".DE", ".L", ".PA"}, cfg.ExchangeSuffixes)
}

func TestLoad_IgnoresUnparseableNumbers(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("MAX_POSITION_PERCENT", "lots")
	t.Setenv("COMPOSITIONS_FILE", "")
	t.Setenv("CLASSIFICATIONS_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8010, cfg.Port)
	assert.Equal(t, 10.0, cfg.MaxPositionPercent)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:               8010,
			MaxPositionPercent: 10,
			Scoring:            ScoringConfig{25, 25, 25, 25},
			ExchangeSuffixes:   []string{".DE"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Port = 0 }, "PORT"},
		{"port too large", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"threshold zero", func(c *Config) { c.MaxPositionPercent = 0 }, "MAX_POSITION_PERCENT"},
		{"threshold above 100", func(c *Config) { c.MaxPositionPercent = 101 }, "MAX_POSITION_PERCENT"},
		{"negative budget", func(c *Config) { c.Scoring.SectorPoints = -1 }, "SCORE_SECTOR_POINTS"},
		{"missing file", func(c *Config) { c.ClassificationsFile = "/nonexistent/classifications.yaml" }, "reference data file"},
		{"no suffixes", func(c *Config) { c.ExchangeSuffixes = nil }, "EXCHANGE_SUFFIXES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

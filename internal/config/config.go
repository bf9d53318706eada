// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/aristath/diversifier/internal/utils"
)

// Config holds application configuration
type Config struct {
	LogLevel            string
	Port                int
	DevMode             bool
	MaxPositionPercent  float64 // Default concentration threshold when a request omits one
	Scoring             ScoringConfig
	CompositionsFile    string // Optional YAML replacing the embedded composition registry
	ClassificationsFile string // Optional YAML replacing the embedded classification dictionary
	ExchangeSuffixes    []string
}

// ScoringConfig holds the point budget of each sub-score
type ScoringConfig struct {
	AssetClassPoints    float64
	RegionPoints        float64
	SectorPoints        float64
	ConcentrationPoints float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnvAsInt("PORT", 8010),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		MaxPositionPercent: getEnvAsFloat("MAX_POSITION_PERCENT", 10),
		Scoring: ScoringConfig{
			AssetClassPoints:    getEnvAsFloat("SCORE_ASSET_CLASS_POINTS", 25),
			RegionPoints:        getEnvAsFloat("SCORE_REGION_POINTS", 25),
			SectorPoints:        getEnvAsFloat("SCORE_SECTOR_POINTS", 25),
			ConcentrationPoints: getEnvAsFloat("SCORE_CONCENTRATION_POINTS", 25),
		},
		CompositionsFile:    getEnv("COMPOSITIONS_FILE", ""),
		ClassificationsFile: getEnv("CLASSIFICATIONS_FILE", ""),
		ExchangeSuffixes:    utils.DefaultExchangeSuffixes,
	}
	if raw := getEnv("EXCHANGE_SUFFIXES", ""); raw != "" {
		cfg.ExchangeSuffixes = utils.NormalizeSuffixes(utils.ParseCSV(raw))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configured values are in range
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxPositionPercent <= 0 || c.MaxPositionPercent > 100 {
		return fmt.Errorf("MAX_POSITION_PERCENT must be in (0, 100], got %g", c.MaxPositionPercent)
	}

	budgets := map[string]float64{
		"SCORE_ASSET_CLASS_POINTS":   c.Scoring.AssetClassPoints,
		"SCORE_REGION_POINTS":        c.Scoring.RegionPoints,
		"SCORE_SECTOR_POINTS":        c.Scoring.SectorPoints,
		"SCORE_CONCENTRATION_POINTS": c.Scoring.ConcentrationPoints,
	}
	for key, value := range budgets {
		if value < 0 {
			return fmt.Errorf("%s must not be negative, got %g", key, value)
		}
	}

	for _, path := range []string{c.CompositionsFile, c.ClassificationsFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("reference data file %s: %w", path, err)
		}
	}

	if len(c.ExchangeSuffixes) == 0 {
		return fmt.Errorf("EXCHANGE_SUFFIXES must list at least one suffix")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/diversifier/internal/config"
	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/diversification"
	"github.com/aristath/diversifier/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               8010,
		MaxPositionPercent: 10,
		Scoring:            config.ScoringConfig{AssetClassPoints: 25, RegionPoints: 25, SectorPoints: 25, ConcentrationPoints: 25},
		ExchangeSuffixes:   utils.DefaultExchangeSuffixes,
	}
}

func TestWire(t *testing.T) {
	container, err := Wire(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, container)

	assert.NotNil(t, container.Registry)
	assert.NotNil(t, container.Dictionary)
	assert.NotNil(t, container.Resolver)
	assert.NotNil(t, container.ScoringEngine)
	assert.NotNil(t, container.DiversificationService)
	assert.NotNil(t, container.Metrics)
	assert.Greater(t, container.Registry.Len(), 0)

	result, err := container.DiversificationService.ComputeScore([]domain.Position{
		{Identifier: "VWCE", MarketValue: 10000},
	}, diversification.Options{MaxPositionPercent: 10})
	require.NoError(t, err)
	assert.Equal(t, 17.0, result.TotalScore)
}

func TestWire_ExternalRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compositions.yaml")
	doc := `compositions:
  HOME:
    name: Home Market Fund
    geographic: {Germany: 100}
    sectoral: {Industrials: 100}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := testConfig()
	cfg.CompositionsFile = path

	container, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, container.Registry.Len())

	entry, ok := container.DiversificationService.Composition("HOME.DE")
	require.True(t, ok)
	assert.Equal(t, "HOME", entry.Identifier)
}

func TestWire_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.ClassificationsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Wire(cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classification dictionary")

	cfg = testConfig()
	cfg.Scoring.RegionPoints = -5
	_, err = Wire(cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring engine")
}

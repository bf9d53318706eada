package lookthrough

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/allocation"
	"github.com/aristath/diversifier/internal/modules/composition"
)

func newDefaultEngine(t *testing.T) *Engine {
	t.Helper()
	registry, err := composition.LoadDefault(nil)
	require.NoError(t, err)
	return NewEngine(registry)
}

func mixedPortfolio() []domain.Position {
	return []domain.Position{
		{Identifier: "VWCE.DE", DisplayName: "Vanguard FTSE All-World", MarketValue: 10000, Region: "Global", Sector: "Diversified", AssetClass: "ETF"},
		{Identifier: "SXR8", DisplayName: "iShares Core S&P 500", MarketValue: 4000, Region: "USA", Sector: "Diversified", AssetClass: "ETF"},
		{Identifier: "AAPL", DisplayName: "Apple", MarketValue: 3000, Region: "USA", Sector: "Technology", AssetClass: "Stock"},
		{Identifier: "XYZE", DisplayName: "Obscure Europe ETF", MarketValue: 2000, Region: "Europe", Sector: "Diversified", AssetClass: "ETF"},
		{Identifier: "FOO", DisplayName: "Foo Holdings", MarketValue: 1000, Region: domain.Unclassified, Sector: domain.Unclassified, AssetClass: domain.Unclassified},
	}
}

func TestDecompose_ConservesValue(t *testing.T) {
	engine := newDefaultEngine(t)
	positions := mixedPortfolio()
	total := domain.TotalMarketValue(positions)

	result, err := engine.Decompose(positions, total)
	require.NoError(t, err)

	assert.InDelta(t, total, allocation.Total(result.RealGeographic), 1e-6)
	assert.InDelta(t, total, allocation.Total(result.RealSectoral), 1e-6)
}

func TestDecompose_SplitsCompositeValue(t *testing.T) {
	engine := newDefaultEngine(t)

	result, err := engine.Decompose(mixedPortfolio(), 20000)
	require.NoError(t, err)

	// USA = 62% of VWCE + 100% of SXR8 (CSPX) + AAPL
	usa, ok := allocation.Find(result.RealGeographic, "USA")
	require.True(t, ok)
	assert.InDelta(t, 6200+4000+3000, usa.TotalValue, 1e-6)
	assert.Equal(t, "USA", result.RealGeographic[0].Label, "largest bucket first")

	require.Len(t, usa.MemberPositions, 3)
	assert.Equal(t, "VWCE.DE", usa.MemberPositions[0].Identifier)
	assert.InDelta(t, 6200, usa.MemberPositions[0].Contribution, 1e-9)
	assert.Equal(t, 10000.0, usa.MemberPositions[0].MarketValue)

	japan, ok := allocation.Find(result.RealGeographic, "Japan")
	require.True(t, ok)
	assert.InDelta(t, 600, japan.TotalValue, 1e-6)

	// Non-decomposed ETF and unclassified stock pass through under their own labels
	europe, ok := allocation.Find(result.RealGeographic, "Europe")
	require.True(t, ok)
	assert.Equal(t, 2000.0, europe.TotalValue)
	unclassified, ok := allocation.Find(result.RealGeographic, domain.Unclassified)
	require.True(t, ok)
	assert.Equal(t, 1000.0, unclassified.TotalValue)

	tech, ok := allocation.Find(result.RealSectoral, "Technology")
	require.True(t, ok)
	assert.InDelta(t, 2450+1240+3000, tech.TotalValue, 1e-6)
}

func TestDecompose_Reporting(t *testing.T) {
	engine := newDefaultEngine(t)

	result, err := engine.Decompose(mixedPortfolio(), 20000)
	require.NoError(t, err)

	assert.True(t, result.HasData)
	assert.Equal(t, []string{"VWCE.DE", "SXR8"}, result.DecomposedIdentifiers)
	assert.Equal(t, []string{"XYZE"}, result.NonDecomposedIdentifiers, "only composites lacking data are reported")
	assert.Equal(t, []string{"VWCE.DE", "SXR8", "AAPL", "XYZE"}, result.ClassifiedIdentifiers)
	assert.Equal(t, 14000.0, result.DecomposedValue)
	assert.InDelta(t, 70.0, result.CoveragePercent, 1e-9)
}

func TestDecompose_UnderAllocationIsPreserved(t *testing.T) {
	engine := newDefaultEngine(t)
	positions := []domain.Position{
		{Identifier: "EIMI", MarketValue: 1000, AssetClass: "ETF", Region: "Emerging Markets", Sector: "Diversified"},
	}

	result, err := engine.Decompose(positions, 1000)
	require.NoError(t, err)

	assert.InDelta(t, 976, allocation.Total(result.RealGeographic), 1e-6)
	assert.InDelta(t, 988, allocation.Total(result.RealSectoral), 1e-6)
	_, ok := allocation.Find(result.RealGeographic, domain.Unclassified)
	assert.False(t, ok, "shortfall must not be parked in a filler bucket")
	assert.InDelta(t, 100.0, result.CoveragePercent, 1e-9)
}

func TestDecompose_StockWithRegistryEntryIsNotSplit(t *testing.T) {
	engine := newDefaultEngine(t)
	positions := []domain.Position{
		{Identifier: "VWCE", MarketValue: 500, AssetClass: "Stock", Region: "Global", Sector: "Diversified"},
	}

	result, err := engine.Decompose(positions, 500)
	require.NoError(t, err)

	require.Len(t, result.RealGeographic, 1)
	assert.Equal(t, "Global", result.RealGeographic[0].Label)
	assert.False(t, result.HasData)
	assert.Empty(t, result.NonDecomposedIdentifiers)
}

type fakeSource map[string]*composition.Entry

func (f fakeSource) Lookup(identifier string) *composition.Entry {
	return f[identifier]
}

func TestDecompose_MissingDimensionPassesThrough(t *testing.T) {
	source := fakeSource{
		"GEO": {
			Identifier:        "GEO",
			GeographicWeights: composition.Weights{{Label: "USA", Percent: 50}, {Label: "Japan", Percent: 50}},
		},
	}
	engine := NewEngine(source)
	positions := []domain.Position{
		{Identifier: "GEO", MarketValue: 100, AssetClass: "ETF", Region: "Global", Sector: "Technology"},
	}

	result, err := engine.Decompose(positions, 100)
	require.NoError(t, err)

	require.Len(t, result.RealGeographic, 2)
	require.Len(t, result.RealSectoral, 1)
	assert.Equal(t, "Technology", result.RealSectoral[0].Label)
	assert.Equal(t, 100.0, result.RealSectoral[0].TotalValue)
}

func TestDecompose_DuplicateIdentifiersAreNotMerged(t *testing.T) {
	engine := newDefaultEngine(t)
	positions := []domain.Position{
		{Identifier: "CSPX", MarketValue: 100, AssetClass: "ETF"},
		{Identifier: "CSPX", MarketValue: 300, AssetClass: "ETF"},
	}

	result, err := engine.Decompose(positions, 400)
	require.NoError(t, err)

	usa, ok := allocation.Find(result.RealGeographic, "USA")
	require.True(t, ok)
	assert.InDelta(t, 400, usa.TotalValue, 1e-9)
	assert.Len(t, usa.MemberPositions, 2)
	assert.Equal(t, []string{"CSPX"}, result.DecomposedIdentifiers)
}

func TestDecompose_Empty(t *testing.T) {
	engine := newDefaultEngine(t)

	result, err := engine.Decompose(nil, 0)
	require.NoError(t, err)

	assert.False(t, result.HasData)
	assert.Empty(t, result.RealGeographic)
	assert.Empty(t, result.RealSectoral)
	assert.Equal(t, 0.0, result.CoveragePercent)
	assert.NotNil(t, result.DecomposedIdentifiers)
}

func TestDecompose_InvalidInput(t *testing.T) {
	engine := newDefaultEngine(t)

	_, err := engine.Decompose([]domain.Position{{Identifier: "X", MarketValue: -1}}, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = engine.Decompose(nil, math.NaN())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = engine.Decompose(nil, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

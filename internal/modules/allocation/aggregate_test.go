package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/diversifier/internal/domain"
)

func TestAggregate_GroupsAndSortsByValue(t *testing.T) {
	positions := []domain.Position{
		{Identifier: "SAP.DE", MarketValue: 500, Region: "Germany"},
		{Identifier: "AAPL", MarketValue: 1000, Region: "USA"},
		{Identifier: "MSFT", MarketValue: 1500, Region: "USA"},
		{Identifier: "SIE.DE", MarketValue: 500, Region: "Germany"},
	}

	buckets := Aggregate(positions, ByRegion)

	require.Len(t, buckets, 2)
	assert.Equal(t, "USA", buckets[0].Label)
	assert.Equal(t, 2500.0, buckets[0].TotalValue)
	assert.InDelta(t, 71.428571, buckets[0].PercentageOfPortfolio, 1e-6)
	assert.Equal(t, "Germany", buckets[1].Label)
	assert.Equal(t, 1000.0, buckets[1].TotalValue)

	// Members keep encounter order
	require.Len(t, buckets[0].MemberPositions, 2)
	assert.Equal(t, "AAPL", buckets[0].MemberPositions[0].Identifier)
	assert.Equal(t, "MSFT", buckets[0].MemberPositions[1].Identifier)
}

func TestAggregate_TiesKeepEncounterOrder(t *testing.T) {
	positions := []domain.Position{
		{Identifier: "A", MarketValue: 100, Sector: "Energy"},
		{Identifier: "B", MarketValue: 100, Sector: "Utilities"},
		{Identifier: "C", MarketValue: 100, Sector: "Financials"},
		{Identifier: "D", MarketValue: 200, Sector: "Healthcare"},
	}

	buckets := Aggregate(positions, BySector)

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"Healthcare", "Energy", "Utilities", "Financials"}, labels)
}

func TestAggregate_SentinelKeysGoToUnclassified(t *testing.T) {
	positions := []domain.Position{
		{Identifier: "A", MarketValue: 100, AssetClass: ""},
		{Identifier: "B", MarketValue: 50, AssetClass: "unclassified"},
		{Identifier: "C", MarketValue: 25, AssetClass: "Stock"},
	}

	buckets := Aggregate(positions, ByAssetClass)

	require.Len(t, buckets, 2)
	assert.Equal(t, domain.Unclassified, buckets[0].Label)
	assert.True(t, buckets[0].IsUnclassified())
	assert.Equal(t, 150.0, buckets[0].TotalValue)
	assert.Len(t, buckets[0].MemberPositions, 2, "unclassified positions are grouped, not dropped")
}

func TestAggregate_ZeroTotal(t *testing.T) {
	positions := []domain.Position{
		{Identifier: "A", MarketValue: 0, Region: "USA"},
		{Identifier: "B", MarketValue: 0, Region: "Japan"},
	}

	buckets := Aggregate(positions, ByRegion)

	require.Len(t, buckets, 2)
	for _, b := range buckets {
		assert.Equal(t, 0.0, b.PercentageOfPortfolio)
	}
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, ByRegion))
	assert.Equal(t, 0.0, Total(nil))
}

func TestAggregate_PercentagesSumTo100(t *testing.T) {
	positions := []domain.Position{
		{Identifier: "A", MarketValue: 333.33, Region: "USA"},
		{Identifier: "B", MarketValue: 17.5, Region: "Japan"},
		{Identifier: "C", MarketValue: 1e6, Region: "Europe"},
		{Identifier: "D", MarketValue: 0.01, Region: ""},
		{Identifier: "E", MarketValue: 42, Region: "USA"},
	}

	for _, keyFn := range []KeyFunc{ByRegion, BySector, ByAssetClass} {
		buckets := Aggregate(positions, keyFn)
		sum := 0.0
		for _, b := range buckets {
			assert.GreaterOrEqual(t, b.PercentageOfPortfolio, 0.0)
			assert.LessOrEqual(t, b.PercentageOfPortfolio, 100.0)
			sum += b.PercentageOfPortfolio
		}
		assert.InDelta(t, 100.0, sum, 1e-6)
	}
}

func TestAccumulator_FractionalContributions(t *testing.T) {
	etf := domain.Position{Identifier: "VWCE", MarketValue: 1000}
	acc := NewAccumulator()
	acc.Add("USA", 620, MemberOf(etf, 620))
	acc.Add("Japan", 60, MemberOf(etf, 60))
	acc.Add("USA", 300, Member{Identifier: "AAPL", MarketValue: 300, Contribution: 300})

	assert.Equal(t, 2, acc.Len())
	buckets := acc.Buckets()

	usa, ok := Find(buckets, "USA")
	require.True(t, ok)
	assert.Equal(t, 920.0, usa.TotalValue)
	require.Len(t, usa.MemberPositions, 2)
	assert.Equal(t, 620.0, usa.MemberPositions[0].Contribution)
	assert.Equal(t, 1000.0, usa.MemberPositions[0].MarketValue)

	_, ok = Find(buckets, "Brazil")
	assert.False(t, ok)
}

func TestClassified(t *testing.T) {
	buckets := []Bucket{
		{Label: "USA", TotalValue: 10},
		{Label: domain.Unclassified, TotalValue: 5},
		{Label: "Japan", TotalValue: 1},
	}

	classified := Classified(buckets)

	require.Len(t, classified, 2)
	assert.Equal(t, "USA", classified[0].Label)
	assert.Equal(t, "Japan", classified[1].Label)
}

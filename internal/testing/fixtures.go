// Package testing provides shared fixtures and test doubles for engine tests.
package testing

import (
	"github.com/rs/zerolog"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/composition"
)

// NewTestLogger returns a logger that discards everything
func NewTestLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

// NewRawHoldingFixtures returns holdings as a caller supplies them: identifiers,
// names and values only, with no classification
func NewRawHoldingFixtures() []domain.Position {
	return []domain.Position{
		{Identifier: "VWCE.DE", DisplayName: "Vanguard FTSE All-World UCITS ETF", MarketValue: 12000, Quantity: 100},
		{Identifier: "AAPL", DisplayName: "Apple Inc.", MarketValue: 3000, Quantity: 15},
		{Identifier: "ASML.AS", DisplayName: "ASML Holding", MarketValue: 2500, Quantity: 4},
		{Identifier: "NESN.SW", DisplayName: "Nestle", MarketValue: 1500, Quantity: 14},
		{Identifier: "ZZZZ", DisplayName: "Mystery Holding Corp", MarketValue: 1000, Quantity: 50},
	}
}

// NewClassifiedPositionFixtures returns fully classified single-security positions
// spread over distinct regions and sectors
func NewClassifiedPositionFixtures() []domain.Position {
	return []domain.Position{
		{Identifier: "AAPL", DisplayName: "Apple Inc.", MarketValue: 2000, Region: "USA", Sector: "Technology", AssetClass: domain.AssetClassStock},
		{Identifier: "SAP.DE", DisplayName: "SAP SE", MarketValue: 2000, Region: "Germany", Sector: "Technology", AssetClass: domain.AssetClassStock},
		{Identifier: "NESN.SW", DisplayName: "Nestle", MarketValue: 2000, Region: "Switzerland", Sector: "Consumer Staples", AssetClass: domain.AssetClassStock},
		{Identifier: "7203.T", DisplayName: "Toyota Motor", MarketValue: 2000, Region: "Japan", Sector: "Consumer Discretionary", AssetClass: domain.AssetClassStock},
		{Identifier: "SHEL.L", DisplayName: "Shell", MarketValue: 2000, Region: "United Kingdom", Sector: "Energy", AssetClass: domain.AssetClassStock},
	}
}

// NewCompositionFixtures returns two small composite breakdowns. FULL sums to 100 in
// both dimensions; PARTIAL sums to 90 geographically and has no sector data.
func NewCompositionFixtures() []composition.Entry {
	return []composition.Entry{
		{
			Identifier:  "FULL",
			DisplayName: "Full Breakdown Fund",
			GeographicWeights: composition.Weights{
				{Label: "USA", Percent: 60},
				{Label: "Europe", Percent: 40},
			},
			SectoralWeights: composition.Weights{
				{Label: "Technology", Percent: 50},
				{Label: "Financials", Percent: 50},
			},
		},
		{
			Identifier:  "PARTIAL",
			DisplayName: "Partial Breakdown Fund",
			GeographicWeights: composition.Weights{
				{Label: "Japan", Percent: 90},
			},
		},
	}
}

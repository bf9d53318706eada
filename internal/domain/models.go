// Package domain provides core domain models and types.
package domain

import "strings"

// Unclassified is the sentinel label for any dimension that could not be determined.
const Unclassified = "Unclassified"

// AssetClass labels used by the reference data and the keyword heuristics
const (
	// AssetClassETF marks composite instruments (index funds) eligible for look-through
	AssetClassETF = "ETF"
	// AssetClassFund is a composite instrument that is not exchange traded
	AssetClassFund = "Fund"
	// AssetClassStock represents individual shares
	AssetClassStock = "Stock"
	// AssetClassBond represents bonds and bond funds classified without look-through
	AssetClassBond = "Bond"
	// AssetClassCommodity represents exchange traded commodities
	AssetClassCommodity = "Commodity"
	// AssetClassCrypto represents crypto assets and their trackers
	AssetClassCrypto = "Crypto"
	// AssetClassCash represents cash and money market instruments
	AssetClassCash = "Cash"
	// AssetClassEquityLike is the heuristic default when a region was found but no asset-class signal
	AssetClassEquityLike = "Equity-like"
)

// SectorDiversified is the heuristic default sector when a region was found but no sector signal
const SectorDiversified = "Diversified"

// Classification is the (region, sector, asset class) triple attached to a position
type Classification struct {
	Region     string `json:"region" yaml:"region" msgpack:"region"`
	Sector     string `json:"sector" yaml:"sector" msgpack:"sector"`
	AssetClass string `json:"asset_class" yaml:"asset_class" msgpack:"asset_class"`
}

// UnclassifiedTriple returns a classification with every dimension set to the sentinel
func UnclassifiedTriple() Classification {
	return Classification{
		Region:     Unclassified,
		Sector:     Unclassified,
		AssetClass: Unclassified,
	}
}

// Position represents one portfolio line as supplied by the calling layer.
// Positions are treated as immutable: engine code copies before filling gaps.
type Position struct {
	Identifier  string  `json:"identifier" yaml:"identifier" msgpack:"identifier"`
	DisplayName string  `json:"display_name" yaml:"display_name" msgpack:"display_name"`
	MarketValue float64 `json:"market_value" yaml:"market_value" msgpack:"market_value"`
	Quantity    float64 `json:"quantity" yaml:"quantity" msgpack:"quantity"`
	Region      string  `json:"region" yaml:"region" msgpack:"region"`
	Sector      string  `json:"sector" yaml:"sector" msgpack:"sector"`
	AssetClass  string  `json:"asset_class" yaml:"asset_class" msgpack:"asset_class"`
}

// IsSentinel reports whether a classification label carries no information
func IsSentinel(label string) bool {
	trimmed := strings.TrimSpace(label)
	return trimmed == "" || strings.EqualFold(trimmed, Unclassified)
}

// NormalizeLabel maps empty or sentinel labels to Unclassified and trims the rest
func NormalizeLabel(label string) string {
	if IsSentinel(label) {
		return Unclassified
	}
	return strings.TrimSpace(label)
}

// IsClassified is true when both region and sector are known.
// Asset class does not participate in coverage.
func (p Position) IsClassified() bool {
	return !IsSentinel(p.Region) && !IsSentinel(p.Sector)
}

// Classification returns the position's triple with sentinel normalization applied
func (p Position) Classification() Classification {
	return Classification{
		Region:     NormalizeLabel(p.Region),
		Sector:     NormalizeLabel(p.Sector),
		AssetClass: NormalizeLabel(p.AssetClass),
	}
}

// NeedsClassification reports whether any dimension is missing
func (p Position) NeedsClassification() bool {
	return IsSentinel(p.Region) || IsSentinel(p.Sector) || IsSentinel(p.AssetClass)
}

// WithClassification returns a copy with missing dimensions filled from c.
// Known labels are never overwritten.
func (p Position) WithClassification(c Classification) Position {
	out := p
	if IsSentinel(out.Region) {
		out.Region = NormalizeLabel(c.Region)
	}
	if IsSentinel(out.Sector) {
		out.Sector = NormalizeLabel(c.Sector)
	}
	if IsSentinel(out.AssetClass) {
		out.AssetClass = NormalizeLabel(c.AssetClass)
	}
	return out
}

// IsComposite reports whether an asset class denotes a decomposable composite instrument
func IsComposite(assetClass string) bool {
	switch strings.ToUpper(strings.TrimSpace(assetClass)) {
	case "ETF", "FUND", "INDEX FUND", "MUTUALFUND", "MUTUAL FUND":
		return true
	}
	return false
}

// TotalMarketValue sums the market value of all positions
func TotalMarketValue(positions []Position) float64 {
	total := 0.0
	for _, p := range positions {
		total += p.MarketValue
	}
	return total
}

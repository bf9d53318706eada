// Package domain holds the scoring result types shared by the engine and its scorers.
package domain

import "github.com/aristath/diversifier/internal/modules/allocation"

// Sub-score names, in the fixed order they appear in a ScoreResult
const (
	SubScoreAssetClass    = "asset_class"
	SubScoreRegion        = "region"
	SubScoreSector        = "sector"
	SubScoreConcentration = "concentration"
)

// PenaltyConcentration names a single-position concentration deduction
const PenaltyConcentration = "concentration"

// Score bands
const (
	LabelExcellent = "Excellent"
	LabelGood      = "Good"
	LabelModerate  = "Moderate"
	LabelWeak      = "Weak"
)

// SubScore is one of the four point components of the total score
type SubScore struct {
	Name      string  `json:"name" msgpack:"name"`
	Score     float64 `json:"score" msgpack:"score"`
	MaxScore  float64 `json:"max_score" msgpack:"max_score"`
	HHIRaw    float64 `json:"hhi_raw" msgpack:"hhi_raw"`
	ItemCount int     `json:"item_count" msgpack:"item_count"`
}

// Penalty is a named point deduction, reported for transparency
type Penalty struct {
	Name       string  `json:"name" msgpack:"name"`
	Identifier string  `json:"ticker" msgpack:"ticker"`
	Points     float64 `json:"points" msgpack:"points"`
	Detail     string  `json:"detail" msgpack:"detail"`
}

// ConcentrationRisk is a position whose weight exceeds the threshold
type ConcentrationRisk struct {
	Identifier    string  `json:"identifier" msgpack:"identifier"`
	DisplayName   string  `json:"display_name" msgpack:"display_name"`
	MarketValue   float64 `json:"market_value" msgpack:"market_value"`
	WeightPercent float64 `json:"weight_percent" msgpack:"weight_percent"`
	ExcessPercent float64 `json:"excess_percent" msgpack:"excess_percent"`
}

// Coverage reports how much of the portfolio carried region and sector data
type Coverage struct {
	TotalPositions          int      `json:"total_positions" msgpack:"total_positions"`
	ClassifiedPositions     int      `json:"classified_positions" msgpack:"classified_positions"`
	ClassifiedPercent       float64  `json:"classified_percent" msgpack:"classified_percent"`
	UnclassifiedIdentifiers []string `json:"unclassified_identifiers" msgpack:"unclassified_identifiers"`
}

// Allocations are the three views a score was computed from
type Allocations struct {
	AssetClass []allocation.Bucket `json:"asset_class" msgpack:"asset_class"`
	Region     []allocation.Bucket `json:"region" msgpack:"region"`
	Sector     []allocation.Bucket `json:"sector" msgpack:"sector"`
}

// ScoreResult is computed fresh on every call and never persisted by the engine
type ScoreResult struct {
	TotalScore         float64             `json:"total_score" msgpack:"total_score"`
	Label              string              `json:"label" msgpack:"label"`
	Subscores          []SubScore          `json:"subscores" msgpack:"subscores"`
	Penalties          []Penalty           `json:"penalties" msgpack:"penalties"`
	Coverage           Coverage            `json:"coverage" msgpack:"coverage"`
	ConcentrationRisks []ConcentrationRisk `json:"concentration_risks" msgpack:"concentration_risks"`
	Allocations        Allocations         `json:"allocations" msgpack:"allocations"`
	MaxPositionPercent float64             `json:"max_position_percent" msgpack:"max_position_percent"`
	LookThrough        bool                `json:"look_through" msgpack:"look_through"`
	// LookThroughCoveragePercent is the share of value that was decomposed (look-through scores only)
	LookThroughCoveragePercent float64 `json:"look_through_coverage_percent" msgpack:"look_through_coverage_percent"`
}

// Subscore returns the named sub-score
func (r *ScoreResult) Subscore(name string) (SubScore, bool) {
	for _, s := range r.Subscores {
		if s.Name == name {
			return s, true
		}
	}
	return SubScore{}, false
}

// LabelFor maps a total score to its band
func LabelFor(total float64) string {
	switch {
	case total >= 80:
		return LabelExcellent
	case total >= 60:
		return LabelGood
	case total >= 40:
		return LabelModerate
	default:
		return LabelWeak
	}
}

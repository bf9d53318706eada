// Package lookthrough splits composite instruments into the geographic and sectoral
// exposure of their constituents and merges it with directly held positions.
package lookthrough

import (
	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/allocation"
	"github.com/aristath/diversifier/internal/modules/composition"
)

// CompositionSource resolves a composite identifier to its breakdown, nil when unknown
type CompositionSource interface {
	Lookup(identifier string) *composition.Entry
}

// Result is the look-through view of a portfolio
type Result struct {
	RealGeographic           []allocation.Bucket `json:"real_geographic" msgpack:"real_geographic"`
	RealSectoral             []allocation.Bucket `json:"real_sectoral" msgpack:"real_sectoral"`
	HasData                  bool                `json:"has_data" msgpack:"has_data"`
	CoveragePercent          float64             `json:"coverage_percent" msgpack:"coverage_percent"`
	TotalValue               float64             `json:"total_value" msgpack:"total_value"`
	DecomposedValue          float64             `json:"decomposed_value" msgpack:"decomposed_value"`
	DecomposedIdentifiers    []string            `json:"decomposed_identifiers" msgpack:"decomposed_identifiers"`
	NonDecomposedIdentifiers []string            `json:"non_decomposed_identifiers" msgpack:"non_decomposed_identifiers"`
	ClassifiedIdentifiers    []string            `json:"classified_identifiers" msgpack:"classified_identifiers"`
}

// Engine decomposes positions against a composition source.
// It keeps no state between calls and is safe for concurrent use.
type Engine struct {
	source CompositionSource
}

// NewEngine creates a decomposition engine
func NewEngine(source CompositionSource) *Engine {
	return &Engine{source: source}
}

// Decompose builds look-through allocations.
//
// Composite positions with registry data have their value split by the registry
// percentages (value * pct / 100) per dimension. Percentages that sum to less than
// 100 leave the shortfall unallocated; nothing is normalized. Every other position
// passes through under its own region and sector.
func (e *Engine) Decompose(positions []domain.Position, totalPortfolioValue float64) (*Result, error) {
	if err := domain.ValidatePositions(positions); err != nil {
		return nil, err
	}
	if err := domain.ValidateTotalValue(totalPortfolioValue); err != nil {
		return nil, err
	}

	geographic := allocation.NewAccumulator()
	sectoral := allocation.NewAccumulator()

	result := &Result{
		TotalValue:               totalPortfolioValue,
		DecomposedIdentifiers:    []string{},
		NonDecomposedIdentifiers: []string{},
		ClassifiedIdentifiers:    []string{},
	}
	decomposed := newIdentifierSet()
	nonDecomposed := newIdentifierSet()
	classified := newIdentifierSet()

	for _, p := range positions {
		composite := domain.IsComposite(p.AssetClass)

		var entry *composition.Entry
		if composite && e.source != nil {
			entry = e.source.Lookup(p.Identifier)
		}

		if entry == nil {
			geographic.Add(p.Region, p.MarketValue, allocation.MemberOf(p, p.MarketValue))
			sectoral.Add(p.Sector, p.MarketValue, allocation.MemberOf(p, p.MarketValue))
			if composite {
				nonDecomposed.add(p.Identifier)
			}
			if p.IsClassified() {
				classified.add(p.Identifier)
			}
			continue
		}

		split(geographic, p, entry.GeographicWeights, p.Region)
		split(sectoral, p, entry.SectoralWeights, p.Sector)

		result.DecomposedValue += p.MarketValue
		decomposed.add(p.Identifier)
		classified.add(p.Identifier)
	}

	result.RealGeographic = geographic.Buckets()
	result.RealSectoral = sectoral.Buckets()
	result.DecomposedIdentifiers = decomposed.items
	result.NonDecomposedIdentifiers = nonDecomposed.items
	result.ClassifiedIdentifiers = classified.items
	result.HasData = len(decomposed.items) > 0
	if totalPortfolioValue > 0 {
		result.CoveragePercent = result.DecomposedValue / totalPortfolioValue * 100
	}

	return result, nil
}

// split credits p's value across weights. A registry entry that lacks one dimension
// entirely passes the position through under its own label for that dimension.
func split(acc *allocation.Accumulator, p domain.Position, weights composition.Weights, ownLabel string) {
	if len(weights) == 0 {
		acc.Add(ownLabel, p.MarketValue, allocation.MemberOf(p, p.MarketValue))
		return
	}
	for _, w := range weights {
		contribution := p.MarketValue * w.Percent / 100
		acc.Add(w.Label, contribution, allocation.MemberOf(p, contribution))
	}
}

// identifierSet keeps first-seen order and drops repeats
type identifierSet struct {
	seen  map[string]bool
	items []string
}

func newIdentifierSet() *identifierSet {
	return &identifierSet{seen: make(map[string]bool), items: []string{}}
}

func (s *identifierSet) add(id string) {
	if s.seen[id] {
		return
	}
	s.seen[id] = true
	s.items = append(s.items, id)
}

// Package scoring computes the diversification score of a set of positions.
package scoring

import (
	"fmt"
	"math"

	portfolio "github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/allocation"
	"github.com/aristath/diversifier/internal/modules/scoring/domain"
	"github.com/aristath/diversifier/internal/modules/scoring/scorers"
)

// Points is the point budget of each sub-score
type Points struct {
	AssetClass    float64
	Region        float64
	Sector        float64
	Concentration float64
}

// DefaultPoints splits 100 points evenly across the four sub-scores
var DefaultPoints = Points{
	AssetClass:    25,
	Region:        25,
	Sector:        25,
	Concentration: 25,
}

// Validate rejects negative or non-finite budgets
func (p Points) Validate() error {
	budgets := []struct {
		field string
		value float64
	}{
		{"asset_class_points", p.AssetClass},
		{"region_points", p.Region},
		{"sector_points", p.Sector},
		{"concentration_points", p.Concentration},
	}
	for _, b := range budgets {
		if !portfolio.IsFinite(b.value) || b.value < 0 {
			return &portfolio.InvalidInputError{
				Field:  b.field,
				Reason: fmt.Sprintf("must be a finite non-negative number (got %g)", b.value),
			}
		}
	}
	return nil
}

// Total is the sum of all budgets
func (p Points) Total() float64 {
	return p.AssetClass + p.Region + p.Sector + p.Concentration
}

// Engine scores positions. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	points        Points
	assetClass    *scorers.DiversityScorer
	region        *scorers.DiversityScorer
	sector        *scorers.DiversityScorer
	concentration *scorers.ConcentrationScorer
}

// NewEngine creates a scoring engine with the given point budgets
func NewEngine(points Points) (*Engine, error) {
	if err := points.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		points:        points,
		assetClass:    scorers.NewDiversityScorer(domain.SubScoreAssetClass, points.AssetClass),
		region:        scorers.NewDiversityScorer(domain.SubScoreRegion, points.Region),
		sector:        scorers.NewDiversityScorer(domain.SubScoreSector, points.Sector),
		concentration: scorers.NewConcentrationScorer(points.Concentration),
	}, nil
}

// Points returns the engine's budgets
func (e *Engine) Points() Points {
	return e.points
}

// NominalViews aggregates positions by their own classification labels
func NominalViews(positions []portfolio.Position) domain.Allocations {
	return domain.Allocations{
		AssetClass: allocation.Aggregate(positions, allocation.ByAssetClass),
		Region:     allocation.Aggregate(positions, allocation.ByRegion),
		Sector:     allocation.Aggregate(positions, allocation.BySector),
	}
}

// Score computes the score from the positions' own classification
func (e *Engine) Score(positions []portfolio.Position, maxPositionPercent float64) (*domain.ScoreResult, error) {
	return e.ScoreViews(positions, NominalViews(positions), maxPositionPercent)
}

// ScoreViews computes the score with the three diversity dimensions taken from views.
// Concentration and coverage are always computed from positions.
func (e *Engine) ScoreViews(positions []portfolio.Position, views domain.Allocations, maxPositionPercent float64) (*domain.ScoreResult, error) {
	if err := portfolio.ValidateMaxPositionPercent(maxPositionPercent); err != nil {
		return nil, err
	}
	if err := portfolio.ValidatePositions(positions); err != nil {
		return nil, err
	}

	result := &domain.ScoreResult{
		Penalties:          []domain.Penalty{},
		ConcentrationRisks: []domain.ConcentrationRisk{},
		Coverage:           coverageOf(positions),
		Allocations:        views,
		MaxPositionPercent: maxPositionPercent,
	}

	if len(positions) == 0 {
		result.Subscores = []domain.SubScore{
			emptySubScore(domain.SubScoreAssetClass, e.points.AssetClass),
			emptySubScore(domain.SubScoreRegion, e.points.Region),
			emptySubScore(domain.SubScoreSector, e.points.Sector),
			emptySubScore(domain.SubScoreConcentration, e.points.Concentration),
		}
		result.Label = domain.LabelFor(0)
		return result, nil
	}

	concentration := e.concentration.Calculate(positions, maxPositionPercent)
	result.Subscores = []domain.SubScore{
		e.assetClass.Calculate(views.AssetClass),
		e.region.Calculate(views.Region),
		e.sector.Calculate(views.Sector),
		concentration.SubScore,
	}
	result.Penalties = concentration.Penalties
	result.ConcentrationRisks = concentration.Risks

	total := 0.0
	for _, s := range result.Subscores {
		total += s.Score
	}
	result.TotalScore = math.Max(0, math.Min(100, total))
	result.Label = domain.LabelFor(result.TotalScore)
	return result, nil
}

func emptySubScore(name string, maxPoints float64) domain.SubScore {
	return domain.SubScore{Name: name, MaxScore: maxPoints, HHIRaw: scorers.MaxHHI}
}

func coverageOf(positions []portfolio.Position) domain.Coverage {
	cov := domain.Coverage{
		TotalPositions:          len(positions),
		UnclassifiedIdentifiers: []string{},
	}
	for _, p := range positions {
		if p.IsClassified() {
			cov.ClassifiedPositions++
			continue
		}
		cov.UnclassifiedIdentifiers = append(cov.UnclassifiedIdentifiers, p.Identifier)
	}
	if cov.TotalPositions > 0 {
		cov.ClassifiedPercent = float64(cov.ClassifiedPositions) / float64(cov.TotalPositions) * 100
	}
	return cov
}

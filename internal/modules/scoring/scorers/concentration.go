package scorers

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	portfolio "github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/scoring/domain"
)

// ExcessPenaltyRate is the points deducted per percentage point above the threshold
const ExcessPenaltyRate = 0.5

// ConcentrationResult is the concentration sub-score with its explanation
type ConcentrationResult struct {
	SubScore  domain.SubScore
	Penalties []domain.Penalty
	Risks     []domain.ConcentrationRisk
}

// ConcentrationScorer penalizes single positions above a weight threshold
type ConcentrationScorer struct {
	MaxPoints float64
}

// NewConcentrationScorer creates a concentration scorer
func NewConcentrationScorer(maxPoints float64) *ConcentrationScorer {
	return &ConcentrationScorer{MaxPoints: maxPoints}
}

// Calculate scores positions against maxPositionPercent.
//
// Each position above the threshold costs min(excess * 0.5, maxPoints / 3) so a single
// outlier cannot zero the sub-score on its own. The score is
// round(max(0, maxPoints - sum of penalties)). An empty or worthless portfolio scores 0.
func (s *ConcentrationScorer) Calculate(positions []portfolio.Position, maxPositionPercent float64) ConcentrationResult {
	result := ConcentrationResult{
		SubScore: domain.SubScore{
			Name:      domain.SubScoreConcentration,
			MaxScore:  s.MaxPoints,
			ItemCount: len(positions),
		},
		Penalties: []domain.Penalty{},
		Risks:     []domain.ConcentrationRisk{},
	}

	values := make([]float64, len(positions))
	for i, p := range positions {
		values[i] = p.MarketValue
	}
	total := 0.0
	if len(values) > 0 {
		total = floats.Sum(values)
	}
	if total <= 0 {
		result.SubScore.HHIRaw = MaxHHI
		return result
	}

	weights := make([]float64, len(values))
	for i, v := range values {
		weights[i] = v / total * 100
	}
	result.SubScore.HHIRaw = floats.Dot(weights, weights)

	perPositionCap := s.MaxPoints / 3
	totalPenalty := 0.0
	for i, p := range positions {
		weight := weights[i]
		if weight <= maxPositionPercent {
			continue
		}
		excess := weight - maxPositionPercent
		points := math.Min(excess*ExcessPenaltyRate, perPositionCap)
		totalPenalty += points

		result.Penalties = append(result.Penalties, domain.Penalty{
			Name:       domain.PenaltyConcentration,
			Identifier: p.Identifier,
			Points:     round2(points),
			Detail: fmt.Sprintf("%s is %.2f%% of the portfolio, %.2f points above the %.2f%% limit",
				p.Identifier, weight, excess, maxPositionPercent),
		})
		result.Risks = append(result.Risks, domain.ConcentrationRisk{
			Identifier:    p.Identifier,
			DisplayName:   p.DisplayName,
			MarketValue:   p.MarketValue,
			WeightPercent: weight,
			ExcessPercent: excess,
		})
	}

	sort.SliceStable(result.Risks, func(i, j int) bool {
		return result.Risks[i].WeightPercent > result.Risks[j].WeightPercent
	})

	result.SubScore.Score = clamp(math.Round(math.Max(0, s.MaxPoints-totalPenalty)), 0, s.MaxPoints)
	return result
}

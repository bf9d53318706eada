// Package scorers provides the sub-score calculations behind the diversification score.
package scorers

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/aristath/diversifier/internal/modules/allocation"
	"github.com/aristath/diversifier/internal/modules/scoring/domain"
)

// MaxHHI is the index of a fully concentrated set (one group holds 100%)
const MaxHHI = 10000.0

// HHI returns the Herfindahl-Hirschman index over the classified buckets and
// how many classified buckets there were.
//
// Shares are re-based so the classified buckets sum to 100; Unclassified mass is
// left out entirely. Zero or one classified bucket is maximal concentration.
func HHI(buckets []allocation.Bucket) (float64, int) {
	classified := allocation.Classified(buckets)
	count := len(classified)
	if count <= 1 {
		return MaxHHI, count
	}

	total := allocation.Total(classified)
	if total <= 0 {
		return MaxHHI, count
	}

	shares := make([]float64, count)
	for i, b := range classified {
		shares[i] = b.TotalValue / total * 100
	}
	return floats.Dot(shares, shares), count
}

// CurveScore maps an HHI onto a point budget with a square-root curve:
// round(sqrt(max(0, 1 - hhi/10000)) * maxPoints).
// The curve spreads the mid-range where most real portfolios land.
func CurveScore(hhi, maxPoints float64) float64 {
	diversity := math.Max(0, 1-hhi/MaxHHI)
	return math.Round(math.Sqrt(diversity) * maxPoints)
}

// DiversityScorer scores one allocation view
type DiversityScorer struct {
	Name      string
	MaxPoints float64
}

// NewDiversityScorer creates a scorer for the named dimension
func NewDiversityScorer(name string, maxPoints float64) *DiversityScorer {
	return &DiversityScorer{Name: name, MaxPoints: maxPoints}
}

// Calculate scores the buckets of one dimension
func (s *DiversityScorer) Calculate(buckets []allocation.Bucket) domain.SubScore {
	hhi, count := HHI(buckets)
	return domain.SubScore{
		Name:      s.Name,
		Score:     clamp(CurveScore(hhi, s.MaxPoints), 0, s.MaxPoints),
		MaxScore:  s.MaxPoints,
		HHIRaw:    hhi,
		ItemCount: count,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 rounds to two decimals for display values
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package allocation groups positions by a classification dimension and
// reports per-group totals and portfolio shares.
package allocation

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/aristath/diversifier/internal/domain"
)

// Member is a position contributing to a bucket
type Member struct {
	Identifier   string  `json:"identifier" msgpack:"identifier"`
	DisplayName  string  `json:"display_name" msgpack:"display_name"`
	MarketValue  float64 `json:"market_value" msgpack:"market_value"`
	Contribution float64 `json:"contribution" msgpack:"contribution"` // share of MarketValue credited to this bucket
}

// MemberOf builds a member crediting value of p to a bucket
func MemberOf(p domain.Position, contribution float64) Member {
	return Member{
		Identifier:   p.Identifier,
		DisplayName:  p.DisplayName,
		MarketValue:  p.MarketValue,
		Contribution: contribution,
	}
}

// Bucket represents allocation for a single group
type Bucket struct {
	Label                 string   `json:"label" msgpack:"label"`
	TotalValue            float64  `json:"total_value" msgpack:"total_value"`
	PercentageOfPortfolio float64  `json:"percentage_of_portfolio" msgpack:"percentage_of_portfolio"`
	MemberPositions       []Member `json:"member_positions" msgpack:"member_positions"`
}

// IsUnclassified reports whether this is the sentinel bucket
func (b Bucket) IsUnclassified() bool {
	return b.Label == domain.Unclassified
}

// KeyFunc extracts the grouping label from a position
type KeyFunc func(domain.Position) string

// ByAssetClass groups by asset class
func ByAssetClass(p domain.Position) string { return p.AssetClass }

// ByRegion groups by region
func ByRegion(p domain.Position) string { return p.Region }

// BySector groups by sector
func BySector(p domain.Position) string { return p.Sector }

// Aggregate groups positions by keyFn.
// Missing or sentinel keys land in the Unclassified bucket. Buckets are sorted by
// descending value; ties keep encounter order.
func Aggregate(positions []domain.Position, keyFn KeyFunc) []Bucket {
	acc := NewAccumulator()
	for _, p := range positions {
		acc.Add(keyFn(p), p.MarketValue, MemberOf(p, p.MarketValue))
	}
	return acc.Buckets()
}

// Accumulator sums values per label in encounter order.
// It is not safe for concurrent use; each aggregation owns its accumulator.
type Accumulator struct {
	index   map[string]int
	buckets []Bucket
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[string]int)}
}

// Add credits value to label and records member for drill-down
func (a *Accumulator) Add(label string, value float64, member Member) {
	label = domain.NormalizeLabel(label)

	i, ok := a.index[label]
	if !ok {
		i = len(a.buckets)
		a.index[label] = i
		a.buckets = append(a.buckets, Bucket{Label: label})
	}

	a.buckets[i].TotalValue += value
	a.buckets[i].MemberPositions = append(a.buckets[i].MemberPositions, member)
}

// Len returns the number of distinct labels seen so far
func (a *Accumulator) Len() int {
	return len(a.buckets)
}

// Buckets returns the accumulated buckets with percentages of their combined total,
// sorted by descending value (stable).
func (a *Accumulator) Buckets() []Bucket {
	out := make([]Bucket, len(a.buckets))
	copy(out, a.buckets)

	total := Total(out)
	for i := range out {
		if total > 0 {
			out[i].PercentageOfPortfolio = out[i].TotalValue / total * 100
		} else {
			out[i].PercentageOfPortfolio = 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalValue > out[j].TotalValue
	})

	return out
}

// Total sums bucket values
func Total(buckets []Bucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.TotalValue
	}
	return floats.Sum(values)
}

// Classified returns the buckets other than Unclassified, order preserved
func Classified(buckets []Bucket) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		if !b.IsUnclassified() {
			out = append(out, b)
		}
	}
	return out
}

// Find returns the bucket with label
func Find(buckets []Bucket, label string) (Bucket, bool) {
	for _, b := range buckets {
		if b.Label == label {
			return b, true
		}
	}
	return Bucket{}, false
}

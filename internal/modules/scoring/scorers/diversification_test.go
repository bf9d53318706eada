package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/diversifier/internal/modules/allocation"
)

func TestHHI(t *testing.T) {
	tests := []struct {
		name          string
		buckets       []allocation.Bucket
		expectedHHI   float64
		expectedCount int
	}{
		{
			name:          "no buckets",
			buckets:       nil,
			expectedHHI:   10000,
			expectedCount: 0,
		},
		{
			name:          "single bucket",
			buckets:       []allocation.Bucket{{Label: "USA", TotalValue: 1000}},
			expectedHHI:   10000,
			expectedCount: 1,
		},
		{
			name: "two equal buckets",
			buckets: []allocation.Bucket{
				{Label: "USA", TotalValue: 500},
				{Label: "Europe", TotalValue: 500},
			},
			expectedHHI:   5000,
			expectedCount: 2,
		},
		{
			name: "unclassified mass is excluded and shares re-based",
			buckets: []allocation.Bucket{
				{Label: "Unclassified", TotalValue: 600},
				{Label: "USA", TotalValue: 300},
				{Label: "Europe", TotalValue: 100},
			},
			expectedHHI:   75*75 + 25*25,
			expectedCount: 2,
		},
		{
			name: "one classified bucket beside unclassified",
			buckets: []allocation.Bucket{
				{Label: "USA", TotalValue: 500},
				{Label: "Unclassified", TotalValue: 500},
			},
			expectedHHI:   10000,
			expectedCount: 1,
		},
		{
			name: "classified buckets without value",
			buckets: []allocation.Bucket{
				{Label: "USA", TotalValue: 0},
				{Label: "Europe", TotalValue: 0},
			},
			expectedHHI:   10000,
			expectedCount: 2,
		},
		{
			name: "four equal buckets",
			buckets: []allocation.Bucket{
				{Label: "A", TotalValue: 1}, {Label: "B", TotalValue: 1},
				{Label: "C", TotalValue: 1}, {Label: "D", TotalValue: 1},
			},
			expectedHHI:   2500,
			expectedCount: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hhi, count := HHI(tt.buckets)
			assert.InDelta(t, tt.expectedHHI, hhi, 1e-9)
			assert.Equal(t, tt.expectedCount, count)
		})
	}
}

func TestCurveScore(t *testing.T) {
	tests := []struct {
		name     string
		hhi      float64
		max      float64
		expected float64
	}{
		{"fully concentrated", 10000, 25, 0},
		{"two equal groups", 5000, 25, 18},
		{"four equal groups", 2500, 25, 22},
		{"perfectly diverse", 0, 25, 25},
		{"above maximum clamps to zero", 12000, 25, 0},
		{"custom budget", 5000, 40, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CurveScore(tt.hhi, tt.max))
		})
	}
}

func TestDiversityScorer_Calculate(t *testing.T) {
	scorer := NewDiversityScorer("region", 25)

	sub := scorer.Calculate([]allocation.Bucket{
		{Label: "USA", TotalValue: 500},
		{Label: "Japan", TotalValue: 500},
	})

	assert.Equal(t, "region", sub.Name)
	assert.Equal(t, 18.0, sub.Score)
	assert.Equal(t, 25.0, sub.MaxScore)
	assert.InDelta(t, 5000.0, sub.HHIRaw, 1e-9)
	assert.Equal(t, 2, sub.ItemCount)
}

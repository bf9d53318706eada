package composition

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/aristath/diversifier/internal/domain"
)

// Weight is one label/percentage pair of a factsheet breakdown
type Weight struct {
	Label   string  `json:"label" msgpack:"label"`
	Percent float64 `json:"percent" msgpack:"percent"`
}

// Weights is an ordered breakdown. Document order is kept so that
// decomposition output does not depend on map iteration order.
type Weights []Weight

// UnmarshalYAML decodes a YAML mapping (label: percent) preserving key order.
// Anchored mappings (&name / *name) are followed.
func (w *Weights) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: weights must be a mapping of label to percent", node.Line)
	}

	out := make(Weights, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		label := node.Content[i].Value
		if label == "" {
			return fmt.Errorf("line %d: empty weight label", node.Content[i].Line)
		}
		if seen[label] {
			return fmt.Errorf("line %d: duplicate weight label %q", node.Content[i].Line, label)
		}
		seen[label] = true

		pct, err := strconv.ParseFloat(node.Content[i+1].Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: weight for %q is not a number: %w", node.Content[i+1].Line, label, err)
		}
		if !domain.IsFinite(pct) {
			return fmt.Errorf("line %d: weight for %q must be a finite number", node.Content[i+1].Line, label)
		}
		if pct < 0 {
			return fmt.Errorf("line %d: weight for %q must not be negative", node.Content[i+1].Line, label)
		}
		out = append(out, Weight{Label: label, Percent: pct})
	}

	*w = out
	return nil
}

// Total returns the sum of all percentages (not necessarily 100)
func (w Weights) Total() float64 {
	if len(w) == 0 {
		return 0
	}
	pcts := make([]float64, len(w))
	for i, weight := range w {
		pcts[i] = weight.Percent
	}
	return floats.Sum(pcts)
}

// Get returns the percentage for a label
func (w Weights) Get(label string) (float64, bool) {
	for _, weight := range w {
		if weight.Label == label {
			return weight.Percent, true
		}
	}
	return 0, false
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aristath/diversifier/internal/domain"
)

// filePosition is one holding in a positions file. JSON files parse too, YAML being a superset.
type filePosition struct {
	Identifier  string   `yaml:"identifier"`
	DisplayName string   `yaml:"display_name"`
	Name        string   `yaml:"name"`
	MarketValue *float64 `yaml:"market_value"`
	Value       *float64 `yaml:"value"`
	ValueEUR    *float64 `yaml:"value_eur"`
	Quantity    float64  `yaml:"quantity"`
	Region      string   `yaml:"region"`
	Sector      string   `yaml:"sector"`
	AssetClass  string   `yaml:"asset_class"`
}

type positionsFile struct {
	Positions []filePosition `yaml:"positions"`
}

// loadPositions reads a positions file: either a bare list or a mapping with a positions key
func loadPositions(path string) ([]domain.Position, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions file: %w", err)
	}
	return parsePositions(data)
}

func parsePositions(data []byte) ([]domain.Position, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse positions: %w", err)
	}
	if len(root.Content) == 0 {
		return []domain.Position{}, nil
	}

	var items []filePosition
	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		if err := root.Content[0].Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to parse positions: %w", err)
		}
	case yaml.MappingNode:
		var doc positionsFile
		if err := root.Content[0].Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse positions: %w", err)
		}
		items = doc.Positions
	default:
		return nil, fmt.Errorf("positions file must hold a list or a mapping with a positions key")
	}

	positions := make([]domain.Position, 0, len(items))
	for i, item := range items {
		pos, err := item.toPosition()
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i+1, err)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (p filePosition) toPosition() (domain.Position, error) {
	if p.Identifier == "" {
		return domain.Position{}, &domain.InvalidInputError{Field: "identifier", Reason: "is required"}
	}

	var (
		amount float64
		found  int
	)
	for _, candidate := range []*float64{p.MarketValue, p.Value, p.ValueEUR} {
		if candidate != nil {
			amount = *candidate
			found++
		}
	}
	if found != 1 {
		return domain.Position{}, &domain.InvalidInputError{
			Field:      "market_value",
			Identifier: p.Identifier,
			Reason:     "requires exactly one of market_value, value, value_eur",
		}
	}

	name := p.DisplayName
	if name == "" {
		name = p.Name
	}

	return domain.Position{
		Identifier:  p.Identifier,
		DisplayName: name,
		MarketValue: amount,
		Quantity:    p.Quantity,
		Region:      p.Region,
		Sector:      p.Sector,
		AssetClass:  p.AssetClass,
	}, nil
}

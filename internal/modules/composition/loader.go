package composition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aristath/diversifier/pkg/embedded"
)

// document is the on-disk shape of the composition registry
type document struct {
	Compositions map[string]struct {
		Name       string  `yaml:"name"`
		Geographic Weights `yaml:"geographic"`
		Sectoral   Weights `yaml:"sectoral"`
	} `yaml:"compositions"`
	Aliases map[string]string `yaml:"aliases"`
}

// Parse builds a registry from a YAML document
func Parse(data []byte, suffixes []string) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse composition registry: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Compositions))
	for id, c := range doc.Compositions {
		if len(c.Geographic) == 0 && len(c.Sectoral) == 0 {
			return nil, fmt.Errorf("composition %q has neither geographic nor sectoral weights", id)
		}
		entries = append(entries, Entry{
			Identifier:        id,
			DisplayName:       c.Name,
			GeographicWeights: c.Geographic,
			SectoralWeights:   c.Sectoral,
		})
	}

	return NewRegistry(entries, doc.Aliases, suffixes), nil
}

// LoadDefault builds the registry from the data compiled into the binary
func LoadDefault(suffixes []string) (*Registry, error) {
	data, err := embedded.Compositions()
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded composition registry: %w", err)
	}
	return Parse(data, suffixes)
}

// LoadFile builds the registry from an external YAML file
func LoadFile(path string, suffixes []string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read composition registry %s: %w", path, err)
	}
	return Parse(data, suffixes)
}

// Load reads path when set and falls back to the embedded registry otherwise
func Load(path string, suffixes []string) (*Registry, error) {
	if path == "" {
		return LoadDefault(suffixes)
	}
	return LoadFile(path, suffixes)
}

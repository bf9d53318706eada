package classification

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/utils"
	"github.com/aristath/diversifier/pkg/embedded"
)

// Record is one curated dictionary row
type Record struct {
	Name       string `yaml:"name" json:"name"`
	Region     string `yaml:"region" json:"region"`
	Sector     string `yaml:"sector" json:"sector"`
	AssetClass string `yaml:"asset_class" json:"asset_class"`
}

// Classification returns the record's triple with sentinel normalization applied
func (r Record) Classification() domain.Classification {
	return domain.Classification{
		Region:     domain.NormalizeLabel(r.Region),
		Sector:     domain.NormalizeLabel(r.Sector),
		AssetClass: domain.NormalizeLabel(r.AssetClass),
	}
}

// Pattern is one compiled keyword rule
type Pattern struct {
	Expr  *regexp.Regexp
	Label string
}

// Keywords holds the three independent ordered pattern lists
type Keywords struct {
	Region     []Pattern
	Sector     []Pattern
	AssetClass []Pattern
}

// Dictionary is the immutable reference data behind the resolver
type Dictionary struct {
	Composites map[string]Record
	Securities map[string]Record
	Keywords   Keywords
}

// Lookup finds an exact identifier, composites first
func (d *Dictionary) Lookup(identifier string) (Record, string, bool) {
	if rec, ok := d.Composites[identifier]; ok {
		return rec, sourceComposites, true
	}
	if rec, ok := d.Securities[identifier]; ok {
		return rec, sourceSecurities, true
	}
	return Record{}, "", false
}

const (
	sourceComposites = "composites"
	sourceSecurities = "securities"
	sourceKeywords   = "keywords"
)

type patternDoc struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
}

type dictionaryDoc struct {
	Composites map[string]Record `yaml:"composites"`
	Securities map[string]Record `yaml:"securities"`
	Keywords   struct {
		Region     []patternDoc `yaml:"region"`
		Sector     []patternDoc `yaml:"sector"`
		AssetClass []patternDoc `yaml:"asset_class"`
	} `yaml:"keywords"`
}

// ParseDictionary builds a dictionary from a YAML document
func ParseDictionary(data []byte) (*Dictionary, error) {
	var doc dictionaryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse classification dictionary: %w", err)
	}

	dict := &Dictionary{
		Composites: normalizeRecords(doc.Composites),
		Securities: normalizeRecords(doc.Securities),
	}

	var err error
	if dict.Keywords.Region, err = compilePatterns("region", doc.Keywords.Region); err != nil {
		return nil, err
	}
	if dict.Keywords.Sector, err = compilePatterns("sector", doc.Keywords.Sector); err != nil {
		return nil, err
	}
	if dict.Keywords.AssetClass, err = compilePatterns("asset_class", doc.Keywords.AssetClass); err != nil {
		return nil, err
	}

	return dict, nil
}

// LoadDefaultDictionary builds the dictionary compiled into the binary
func LoadDefaultDictionary() (*Dictionary, error) {
	data, err := embedded.Classifications()
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded classification dictionary: %w", err)
	}
	return ParseDictionary(data)
}

// LoadDictionary reads path when set and falls back to the embedded dictionary otherwise
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return LoadDefaultDictionary()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classification dictionary %s: %w", path, err)
	}
	return ParseDictionary(data)
}

func normalizeRecords(in map[string]Record) map[string]Record {
	out := make(map[string]Record, len(in))
	for id, rec := range in {
		key := utils.NormalizeSymbol(id)
		if key == "" {
			continue
		}
		out[key] = rec
	}
	return out
}

func compilePatterns(dimension string, docs []patternDoc) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(docs))
	for i, p := range docs {
		if p.Pattern == "" || p.Label == "" {
			return nil, fmt.Errorf("%s keyword #%d: pattern and label are required", dimension, i+1)
		}
		// Matching runs on lower-cased text; (?i) keeps hand-written upper-case patterns working.
		expr, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s keyword #%d (%q): %w", dimension, i+1, p.Pattern, err)
		}
		patterns = append(patterns, Pattern{Expr: expr, Label: p.Label})
	}
	return patterns, nil
}

// firstMatch returns the label of the first pattern matching text
func firstMatch(patterns []Pattern, text string) (string, bool) {
	for _, p := range patterns {
		if p.Expr.MatchString(text) {
			return p.Label, true
		}
	}
	return "", false
}

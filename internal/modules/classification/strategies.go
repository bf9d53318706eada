package classification

import (
	"strings"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/utils"
)

// StrategyKind names the resolver stage that produced a classification
type StrategyKind string

const (
	// StrategyExactMatch looks the identifier up verbatim in the curated dictionary
	StrategyExactMatch StrategyKind = "exact_match"
	// StrategySuffixRetry retries the dictionary on the base symbol and on common exchange suffixes
	StrategySuffixRetry StrategyKind = "suffix_retry"
	// StrategyKeywordHeuristic scans identifier and display name against the keyword lists
	StrategyKeywordHeuristic StrategyKind = "keyword_heuristic"
	// StrategyUnclassified is the terminal fallback
	StrategyUnclassified StrategyKind = "unclassified"
)

// Query is the normalized input handed to every strategy
type Query struct {
	Identifier  string // upper-cased, trimmed
	DisplayName string
}

// Match is a successful strategy result
type Match struct {
	Classification domain.Classification
	MatchedKey     string // dictionary key or matched keyword text
	Source         string // composites, securities or keywords
}

// Strategy is one stage of the fallback chain
type Strategy interface {
	Kind() StrategyKind
	Resolve(q Query) (Match, bool)
}

// ExactMatch resolves identifiers present verbatim in the dictionary
type ExactMatch struct {
	dict *Dictionary
}

// NewExactMatch creates the exact-match stage
func NewExactMatch(dict *Dictionary) *ExactMatch {
	return &ExactMatch{dict: dict}
}

// Kind implements Strategy
func (s *ExactMatch) Kind() StrategyKind { return StrategyExactMatch }

// Resolve implements Strategy
func (s *ExactMatch) Resolve(q Query) (Match, bool) {
	rec, source, ok := s.dict.Lookup(q.Identifier)
	if !ok {
		return Match{}, false
	}
	return Match{Classification: rec.Classification(), MatchedKey: q.Identifier, Source: source}, true
}

// SuffixRetry strips the exchange suffix and retries, then tries each known suffix
type SuffixRetry struct {
	dict     *Dictionary
	suffixes []string
}

// NewSuffixRetry creates the suffix-retry stage
func NewSuffixRetry(dict *Dictionary, suffixes []string) *SuffixRetry {
	if len(suffixes) == 0 {
		suffixes = utils.DefaultExchangeSuffixes
	}
	return &SuffixRetry{dict: dict, suffixes: utils.NormalizeSuffixes(suffixes)}
}

// Kind implements Strategy
func (s *SuffixRetry) Kind() StrategyKind { return StrategySuffixRetry }

// Resolve implements Strategy
func (s *SuffixRetry) Resolve(q Query) (Match, bool) {
	base := utils.BaseSymbol(q.Identifier)
	if base == "" {
		return Match{}, false
	}

	if base != q.Identifier {
		if rec, source, ok := s.dict.Lookup(base); ok {
			return Match{Classification: rec.Classification(), MatchedKey: base, Source: source}, true
		}
	}

	for _, suffix := range s.suffixes {
		key := base + suffix
		if key == q.Identifier {
			continue
		}
		if rec, source, ok := s.dict.Lookup(key); ok {
			return Match{Classification: rec.Classification(), MatchedKey: key, Source: source}, true
		}
	}

	return Match{}, false
}

// KeywordHeuristic classifies from keywords in identifier and display name.
// A region hit is required; without one the stage reports no match so the
// position stays fully unclassified rather than partially.
type KeywordHeuristic struct {
	keywords Keywords
}

// NewKeywordHeuristic creates the keyword stage
func NewKeywordHeuristic(keywords Keywords) *KeywordHeuristic {
	return &KeywordHeuristic{keywords: keywords}
}

// Kind implements Strategy
func (s *KeywordHeuristic) Kind() StrategyKind { return StrategyKeywordHeuristic }

// Resolve implements Strategy
func (s *KeywordHeuristic) Resolve(q Query) (Match, bool) {
	text := strings.ToLower(strings.TrimSpace(q.Identifier + " " + q.DisplayName))
	if text == "" {
		return Match{}, false
	}

	region, ok := firstMatch(s.keywords.Region, text)
	if !ok {
		return Match{}, false
	}

	sector, ok := firstMatch(s.keywords.Sector, text)
	if !ok {
		sector = domain.SectorDiversified
	}
	assetClass, ok := firstMatch(s.keywords.AssetClass, text)
	if !ok {
		assetClass = domain.AssetClassEquityLike
	}

	return Match{
		Classification: domain.Classification{
			Region:     region,
			Sector:     sector,
			AssetClass: assetClass,
		},
		MatchedKey: text,
		Source:     sourceKeywords,
	}, true
}

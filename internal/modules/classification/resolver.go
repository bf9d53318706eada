// Package classification resolves raw identifiers to a (region, sector, asset class) triple
// through an ordered chain of strategies: exact match, suffix retry, keyword heuristic.
package classification

import (
	"strings"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/utils"
)

// Resolution is a classification plus the trace of how it was obtained
type Resolution struct {
	Identifier     string                `json:"identifier"`
	DisplayName    string                `json:"display_name"`
	Classification domain.Classification `json:"classification"`
	Strategy       StrategyKind          `json:"strategy"`
	MatchedKey     string                `json:"matched_key,omitempty"`
	Source         string                `json:"source,omitempty"`
}

// Resolver runs the strategy chain. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds the standard chain over dict
func NewResolver(dict *Dictionary, suffixes []string) *Resolver {
	return NewResolverWithStrategies(
		NewExactMatch(dict),
		NewSuffixRetry(dict, suffixes),
		NewKeywordHeuristic(dict.Keywords),
	)
}

// NewResolverWithStrategies builds a resolver with an explicit chain; first match wins
func NewResolverWithStrategies(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Strategies returns the chain kinds in evaluation order
func (r *Resolver) Strategies() []StrategyKind {
	kinds := make([]StrategyKind, 0, len(r.strategies)+1)
	for _, s := range r.strategies {
		kinds = append(kinds, s.Kind())
	}
	return append(kinds, StrategyUnclassified)
}

// Resolve returns the triple for identifier; it never fails
func (r *Resolver) Resolve(identifier, displayName string) domain.Classification {
	return r.Explain(identifier, displayName).Classification
}

// Explain resolves and reports which strategy produced the result
func (r *Resolver) Explain(identifier, displayName string) Resolution {
	q := Query{
		Identifier:  utils.NormalizeSymbol(identifier),
		DisplayName: strings.TrimSpace(displayName),
	}
	res := Resolution{
		Identifier:  q.Identifier,
		DisplayName: q.DisplayName,
	}

	for _, s := range r.strategies {
		m, ok := s.Resolve(q)
		if !ok {
			continue
		}
		res.MatchedKey = m.MatchedKey
		res.Source = m.Source
		// A hit ends the chain. Without a region the hit carries no usable signal
		// and the result is fully unclassified, never mixed with later stages.
		if domain.IsSentinel(m.Classification.Region) {
			res.Classification = domain.UnclassifiedTriple()
			res.Strategy = StrategyUnclassified
			return res
		}
		res.Classification = m.Classification
		res.Strategy = s.Kind()
		return res
	}

	res.Classification = domain.UnclassifiedTriple()
	res.Strategy = StrategyUnclassified
	return res
}

// Package composition holds the look-through reference data for composite instruments
// and resolves equivalent identifiers across markets.
package composition

import (
	"sort"

	"github.com/aristath/diversifier/internal/utils"
)

// Entry is the factsheet breakdown of one composite instrument.
// Entries are shared read-only between concurrent callers.
type Entry struct {
	Identifier        string  `json:"identifier" msgpack:"identifier"`
	DisplayName       string  `json:"display_name" msgpack:"display_name"`
	GeographicWeights Weights `json:"geographic_weights" msgpack:"geographic_weights"`
	SectoralWeights   Weights `json:"sectoral_weights" msgpack:"sectoral_weights"`
}

// Registry maps composite identifiers to their breakdowns.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	entries  map[string]*Entry
	aliases  map[string]string
	suffixes []string
}

// NewRegistry builds a registry from entries and an alias table (alias -> canonical identifier).
// Keys are upper-cased; suffixes default to utils.DefaultExchangeSuffixes when empty.
func NewRegistry(entries []Entry, aliases map[string]string, suffixes []string) *Registry {
	if len(suffixes) == 0 {
		suffixes = utils.DefaultExchangeSuffixes
	}

	r := &Registry{
		entries:  make(map[string]*Entry, len(entries)),
		aliases:  make(map[string]string, len(aliases)),
		suffixes: utils.NormalizeSuffixes(suffixes),
	}

	for i := range entries {
		entry := entries[i]
		entry.Identifier = utils.NormalizeSymbol(entry.Identifier)
		if entry.Identifier == "" {
			continue
		}
		r.entries[entry.Identifier] = &entry
	}
	for alias, canonical := range aliases {
		alias = utils.NormalizeSymbol(alias)
		canonical = utils.NormalizeSymbol(canonical)
		if alias == "" || canonical == "" || alias == canonical {
			continue
		}
		r.aliases[alias] = canonical
	}

	return r
}

// Lookup returns the breakdown for identifier, or nil when the instrument has no registry data.
//
// Resolution order:
//  1. the base symbol (exchange suffix stripped), then the identifier as given
//  2. the alias table, keyed by base symbol or identifier
//  3. each known exchange suffix re-appended to the base symbol and to the alias target
func (r *Registry) Lookup(identifier string) *Entry {
	key, ok := r.ResolveKey(identifier)
	if !ok {
		return nil
	}
	return r.entries[key]
}

// ResolveKey returns the registry key identifier resolves to
func (r *Registry) ResolveKey(identifier string) (string, bool) {
	raw := utils.NormalizeSymbol(identifier)
	if raw == "" {
		return "", false
	}
	base := utils.BaseSymbol(raw)

	if r.has(base) {
		return base, true
	}
	if r.has(raw) {
		return raw, true
	}

	canonical, aliased := r.aliases[base]
	if !aliased {
		canonical, aliased = r.aliases[raw]
	}
	candidates := []string{base}
	if aliased {
		if r.has(canonical) {
			return canonical, true
		}
		canonicalBase := utils.BaseSymbol(canonical)
		if r.has(canonicalBase) {
			return canonicalBase, true
		}
		candidates = append(candidates, canonicalBase)
	}

	for _, candidate := range candidates {
		for _, suffix := range r.suffixes {
			if r.has(candidate + suffix) {
				return candidate + suffix, true
			}
		}
	}

	return "", false
}

// CanonicalFor returns the alias target for identifier, if it is a known alias
func (r *Registry) CanonicalFor(identifier string) (string, bool) {
	raw := utils.NormalizeSymbol(identifier)
	if canonical, ok := r.aliases[utils.BaseSymbol(raw)]; ok {
		return canonical, true
	}
	canonical, ok := r.aliases[raw]
	return canonical, ok
}

// Entries returns all entries sorted by identifier
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier < out[j].Identifier
	})
	return out
}

// Len returns the number of composite instruments in the registry
func (r *Registry) Len() int {
	return len(r.entries)
}

// AliasCount returns the number of alias table rows
func (r *Registry) AliasCount() int {
	return len(r.aliases)
}

func (r *Registry) has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

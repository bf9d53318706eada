package testing

import (
	"strings"
	"sync"

	"github.com/aristath/diversifier/internal/domain"
	"github.com/aristath/diversifier/internal/modules/classification"
	"github.com/aristath/diversifier/internal/modules/composition"
)

// MockClassifier resolves identifiers from a fixed table and records every call
type MockClassifier struct {
	mu    sync.RWMutex
	table map[string]domain.Classification
	calls []string
}

// NewMockClassifier creates a mock classifier
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{table: make(map[string]domain.Classification)}
}

// Set registers the classification returned for identifier
func (m *MockClassifier) Set(identifier string, c domain.Classification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table[strings.ToUpper(identifier)] = c
}

// Resolve returns the registered classification or the Unclassified triple
func (m *MockClassifier) Resolve(identifier, displayName string) domain.Classification {
	return m.Explain(identifier, displayName).Classification
}

// Explain resolves and reports exact_match or unclassified
func (m *MockClassifier) Explain(identifier, displayName string) classification.Resolution {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToUpper(identifier)
	m.calls = append(m.calls, key)

	res := classification.Resolution{Identifier: key, DisplayName: displayName}
	if c, ok := m.table[key]; ok {
		res.Classification = c
		res.Strategy = classification.StrategyExactMatch
		res.MatchedKey = key
		return res
	}
	res.Classification = domain.UnclassifiedTriple()
	res.Strategy = classification.StrategyUnclassified
	return res
}

// Calls returns the identifiers resolved so far, in call order
func (m *MockClassifier) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockCompositionSource serves composition entries from memory
type MockCompositionSource struct {
	mu      sync.RWMutex
	entries map[string]*composition.Entry
}

// NewMockCompositionSource creates a source holding entries
func NewMockCompositionSource(entries ...composition.Entry) *MockCompositionSource {
	m := &MockCompositionSource{entries: make(map[string]*composition.Entry)}
	for i := range entries {
		e := entries[i]
		m.entries[strings.ToUpper(e.Identifier)] = &e
	}
	return m
}

// Lookup returns the entry for identifier or nil
func (m *MockCompositionSource) Lookup(identifier string) *composition.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[strings.ToUpper(identifier)]
}

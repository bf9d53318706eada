package utils

import "strings"

// DefaultExchangeSuffixes are the exchange suffixes re-appended when an identifier
// is not found under its bare symbol (Euronext Paris/Amsterdam, Xetra, London, SIX, Milan).
var DefaultExchangeSuffixes = []string{".PA", ".AS", ".DE", ".L", ".SW", ".MI"}

// ParseCSV splits a comma-separated string and returns trimmed non-empty values.
// Returns nil for empty/whitespace-only input.
// Used for list-valued environment settings such as EXCHANGE_SUFFIXES.
func ParseCSV(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	for _, v := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil
	}

	return result
}

// NormalizeSymbol upper-cases and trims an identifier
func NormalizeSymbol(identifier string) string {
	return strings.ToUpper(strings.TrimSpace(identifier))
}

// BaseSymbol strips a trailing ".EXCHANGE" suffix by splitting on the first dot.
// "VWCE.DE" -> "VWCE", "BRK.B" -> "BRK".
func BaseSymbol(identifier string) string {
	normalized := NormalizeSymbol(identifier)
	if idx := strings.Index(normalized, "."); idx > 0 {
		return normalized[:idx]
	}
	return normalized
}

// NormalizeSuffixes upper-cases suffixes, adds the leading dot where missing and drops duplicates.
// Order is preserved.
func NormalizeSuffixes(suffixes []string) []string {
	seen := make(map[string]bool, len(suffixes))
	result := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = NormalizeSymbol(s)
		if s == "" || s == "." {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}

package domain

// ClassificationResolver resolves a raw identifier and display name to a classification triple.
// Implementations never fail; unknown dimensions come back as Unclassified.
// This interface keeps the diversification service independent of the classification package.
type ClassificationResolver interface {
	Resolve(identifier, displayName string) Classification
}

// ClassificationResolverFunc adapts a plain function to ClassificationResolver
type ClassificationResolverFunc func(identifier, displayName string) Classification

// Resolve calls f(identifier, displayName)
func (f ClassificationResolverFunc) Resolve(identifier, displayName string) Classification {
	return f(identifier, displayName)
}

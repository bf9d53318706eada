// Package embedded provides the reference data compiled into the binary.
package embedded

import (
	"embed"
)

// Files contains the default reference data:
//   - data/compositions.yaml - composite instrument breakdowns and the alias table
//   - data/classifications.yaml - curated classification dictionary and keyword fallbacks
//
// Deployments can replace either document with an external file (see config).
//
//go:embed data/*.yaml
var Files embed.FS

const (
	// CompositionsFile is the embedded path of the composition registry document
	CompositionsFile = "data/compositions.yaml"
	// ClassificationsFile is the embedded path of the classification dictionary document
	ClassificationsFile = "data/classifications.yaml"
)

// Compositions returns the embedded composition registry document
func Compositions() ([]byte, error) {
	return Files.ReadFile(CompositionsFile)
}

// Classifications returns the embedded classification dictionary document
func Classifications() ([]byte, error) {
	return Files.ReadFile(ClassificationsFile)
}

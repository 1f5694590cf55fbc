// Package testhelpers builds shared fixtures for formatter and command tests.
package testhelpers

import (
	"testing"

	"github.com/LegacyCodeHQ/ecocap/buildscript"
	"github.com/LegacyCodeHQ/ecocap/capability"
	"github.com/LegacyCodeHQ/ecocap/catalog"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/report"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// ConflictingDeps lists two activation implementations, the soap API and an untagged library.
const ConflictingDeps = `jakarta.activation:jakarta.activation-api:2.1.0
com.sun.activation:jakarta.activation:1.2.2
jakarta.xml.soap:jakarta.xml.soap-api:3.0.0
com.example:unrelated-lib:1.0
`

// CleanDeps has a tagged module but no competing alternative.
const CleanDeps = `jakarta.xml.soap:jakarta.xml.soap-api:3.0.0
com.example:unrelated-lib:1.0
`

// Report checks a coordinate list against the built-in catalog.
func Report(t *testing.T, deps string, strategy conflict.Strategy) report.Report {
	t.Helper()

	parsed, err := buildscript.ParseCoordinateList([]byte(deps))
	require.NoError(t, err)

	c, err := catalog.Builtin()
	require.NoError(t, err)

	r, err := report.Build("deps.txt", parsed, capability.NewTagger(c), conflict.Resolver{Strategy: strategy})
	require.NoError(t, err)
	return r
}

// Goldie returns a goldie instance reading fixtures from the package's testdata directory.
func Goldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t)
}

// DOTGoldie returns a goldie instance for Graphviz fixtures.
func DOTGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithNameSuffix(".gold.dot"))
}

// MermaidGoldie returns a goldie instance for Mermaid fixtures.
func MermaidGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithNameSuffix(".gold.mmd"))
}

package jsonfmt_test

import (
	"encoding/json"
	"testing"

	"github.com/LegacyCodeHQ/ecocap/cmd/check/formatters"
	"github.com/LegacyCodeHQ/ecocap/cmd/check/formatters/jsonfmt"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decoded struct {
	Source       string `json:"source"`
	Dependencies []struct {
		Module       string `json:"module"`
		Version      string `json:"version"`
		Line         int    `json:"line"`
		Capabilities []struct {
			Group   string `json:"group"`
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"capabilities"`
	} `json:"dependencies"`
	Conflicts []struct {
		Capability string   `json:"capability"`
		Candidates []string `json:"candidates"`
		Selected   string   `json:"selected"`
		Reason     string   `json:"reason"`
		Resolved   bool     `json:"resolved"`
	} `json:"conflicts"`
}

func TestJSONFormatter_ResolvedConflict(t *testing.T) {
	r := testhelpers.Report(t, testhelpers.ConflictingDeps, conflict.StrategyHighestVersion)

	output, err := (&jsonfmt.Formatter{}).Format(r, formatters.RenderOptions{})
	require.NoError(t, err)

	var doc decoded
	require.NoError(t, json.Unmarshal([]byte(output), &doc))

	assert.Equal(t, "deps.txt", doc.Source)
	require.Len(t, doc.Dependencies, 4)
	assert.Equal(t, "jakarta.activation:jakarta.activation-api", doc.Dependencies[0].Module)
	assert.Equal(t, 1, doc.Dependencies[0].Line)
	require.Len(t, doc.Dependencies[0].Capabilities, 1)
	assert.Equal(t, "javax.activation", doc.Dependencies[0].Capabilities[0].Group)
	assert.Equal(t, "2.1.0", doc.Dependencies[0].Capabilities[0].Version)
	assert.Empty(t, doc.Dependencies[3].Capabilities)

	require.Len(t, doc.Conflicts, 1)
	assert.Equal(t, "javax.activation:activation", doc.Conflicts[0].Capability)
	assert.Equal(t, []string{
		"com.sun.activation:jakarta.activation:1.2.2",
		"jakarta.activation:jakarta.activation-api:2.1.0",
	}, doc.Conflicts[0].Candidates)
	assert.True(t, doc.Conflicts[0].Resolved)
	assert.Equal(t, "jakarta.activation:jakarta.activation-api:2.1.0", doc.Conflicts[0].Selected)
	assert.Equal(t, "highest", doc.Conflicts[0].Reason)
}

func TestJSONFormatter_EmptyListsAreArrays(t *testing.T) {
	r := testhelpers.Report(t, testhelpers.CleanDeps, conflict.StrategyFail)

	output, err := (&jsonfmt.Formatter{}).Format(r, formatters.RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, `"conflicts": []`)
	assert.Contains(t, output, `"capabilities": []`)
}

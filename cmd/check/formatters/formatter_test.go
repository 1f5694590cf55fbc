package formatters_test

import (
	"testing"

	"github.com/LegacyCodeHQ/ecocap/cmd/check/formatters"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/internal/testhelpers"
	"github.com/stretchr/testify/assert"
)

func TestParseOutputFormat(t *testing.T) {
	f, ok := formatters.ParseOutputFormat("DOT")
	assert.True(t, ok)
	assert.Equal(t, formatters.OutputFormatDOT, f)

	_, ok = formatters.ParseOutputFormat("svg")
	assert.False(t, ok)

	assert.Equal(t, "text, json, dot, mermaid", formatters.SupportedFormats())
}

func TestModuleStatuses(t *testing.T) {
	resolved := testhelpers.Report(t, testhelpers.ConflictingDeps, conflict.StrategyHighestVersion)
	assert.Equal(t, map[string]formatters.Status{
		"jakarta.activation:jakarta.activation-api": formatters.StatusSelected,
		"com.sun.activation:jakarta.activation":     formatters.StatusExcluded,
	}, formatters.ModuleStatuses(resolved))

	unresolved := testhelpers.Report(t, testhelpers.ConflictingDeps, conflict.StrategyFail)
	assert.Equal(t, map[string]formatters.Status{
		"jakarta.activation:jakarta.activation-api": formatters.StatusUnresolved,
		"com.sun.activation:jakarta.activation":     formatters.StatusUnresolved,
	}, formatters.ModuleStatuses(unresolved))
}

func TestModuleVersions(t *testing.T) {
	r := testhelpers.Report(t, testhelpers.ConflictingDeps, conflict.StrategyFail)
	assert.Equal(t, map[string][]string{
		"jakarta.activation:jakarta.activation-api": {"2.1.0"},
		"com.sun.activation:jakarta.activation":     {"1.2.2"},
	}, formatters.ModuleVersions(r))
}

package litmus

import (
	"fmt"
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/ecocap/catalog"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentIsSetup(t *testing.T) {
	actual := 2 + 2
	expected := 4

	assert.Equal(t, expected, actual)
}

func TestGoldieIsSetup(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte("Goldie is setup!"))
}

func TestEmbeddedCatalogIsSetup(t *testing.T) {
	c, err := catalog.Builtin()
	require.NoError(t, err)

	var sb strings.Builder
	for _, r := range c.Rules() {
		fmt.Fprintf(&sb, "%s\n", r.ID())
		for _, m := range r.Modules {
			fmt.Fprintf(&sb, "  %s\n", m)
		}
	}

	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte(sb.String()))
}

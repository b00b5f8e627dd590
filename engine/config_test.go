package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remold-dev/remold/syntax"
)

func TestConfiguration_Backends(t *testing.T) {
	fast, err := Configuration{Unparser: UnparserFast}.backend("a = 1\n")
	require.NoError(t, err)
	assert.IsType(t, &syntax.Printer{}, fast)

	precise, err := Configuration{Unparser: UnparserPrecise}.backend("a = 1\n")
	require.NoError(t, err)
	assert.IsType(t, &syntax.PreciseUnparser{}, precise)

	// The zero value selects the precise backend.
	def, err := Configuration{}.backend("a = 1\n")
	require.NoError(t, err)
	assert.IsType(t, &syntax.PreciseUnparser{}, def)

	_, err = Configuration{Unparser: "telepathic"}.backend("a = 1\n")
	assert.Error(t, err)
}

func TestConfiguration_CustomBackendWins(t *testing.T) {
	custom := syntax.NewPrinter()
	cfg := Configuration{
		Unparser: "telepathic",
		Custom:   func(source string) syntax.Unparser { return custom },
	}
	backend, err := cfg.backend("a = 1\n")
	require.NoError(t, err)
	assert.Same(t, syntax.Unparser(custom), backend)
}

func TestSession_FastBackendNormalizesLayout(t *testing.T) {
	session := &Session{
		Rules:  []Rule{constantRule(1, 2)},
		Config: Configuration{Unparser: UnparserFast},
	}
	// Only the replaced node is re-synthesized; surrounding text keeps
	// its layout even on the fast backend.
	out, err := session.Run("x   =   1\n")
	require.NoError(t, err)
	assert.Equal(t, "x   =   2\n", out)
}

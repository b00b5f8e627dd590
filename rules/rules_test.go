package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remold-dev/remold/engine"
)

func runRule(t *testing.T, name, source string) string {
	t.Helper()
	built, err := Build([]string{name})
	require.NoError(t, err)
	out, err := engine.NewSession(built...).Run(source)
	require.NoError(t, err)
	return out
}

func TestRegistry_Names(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "propagate-constants")
	assert.Contains(t, names, "replace-placeholders")
	assert.Contains(t, names, "swap-operands")
	assert.IsIncreasing(t, names)
}

func TestRegistry_Describe(t *testing.T) {
	assert.NotEmpty(t, Describe("propagate-constants"))
	assert.Empty(t, Describe("no-such-rule"))
}

func TestRegistry_BuildUnknown(t *testing.T) {
	_, err := Build([]string{"no-such-rule"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-rule")
}

func TestRegistry_BuildAllByDefault(t *testing.T) {
	rules, err := Build(nil)
	require.NoError(t, err)
	assert.Len(t, rules, len(Names()))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("propagate-constants", "again", func() engine.Rule { return nil })
	})
}

func TestPropagateConstants(t *testing.T) {
	out := runRule(t, "propagate-constants", "a = 1\nb = a\n")
	assert.Equal(t, "a = 1\nb = 1\n", out)
}

func TestPropagateConstants_Idempotent(t *testing.T) {
	first := runRule(t, "propagate-constants", "a = 1\nb = a\n")
	assert.Equal(t, first, runRule(t, "propagate-constants", first))
}

func TestPropagateConstants_AcrossScopes(t *testing.T) {
	out := runRule(t, "propagate-constants", "a = 1\ndef f():\n    return a\n")
	assert.Equal(t, "a = 1\ndef f():\n    return 1\n", out)
}

func TestPropagateConstants_AmbiguousDefinition(t *testing.T) {
	source := "a = 1\na = 2\nb = a\n"
	assert.Equal(t, source, runRule(t, "propagate-constants", source))
}

func TestPropagateConstants_NonConstantDefinition(t *testing.T) {
	source := "a = f()\nb = a\n"
	assert.Equal(t, source, runRule(t, "propagate-constants", source))
}

func TestPropagateConstants_ClassBodyNotReachable(t *testing.T) {
	source := "class C:\n    y = 1\n    def m(self):\n        return y\n"
	assert.Equal(t, source, runRule(t, "propagate-constants", source))
}

func TestReplacePlaceholders(t *testing.T) {
	out := runRule(t, "replace-placeholders", "x = placeholder\ny = placeholder + 1\n")
	assert.Equal(t, "x = 42\ny = 42 + 1\n", out)
}

func TestReplacePlaceholders_IgnoresStores(t *testing.T) {
	source := "placeholder = 1\n"
	assert.Equal(t, source, runRule(t, "replace-placeholders", source))
}

func TestSwapOperands(t *testing.T) {
	out := runRule(t, "swap-operands", "x = a + b\n")
	assert.Equal(t, "x = b - a\n", out)
}

func TestSwapOperands_KeepsOperandLayout(t *testing.T) {
	out := runRule(t, "swap-operands", "x = f( 1 ) + g( 2 )\n")
	assert.Equal(t, "x = g( 2 ) - f( 1 )\n", out)
}

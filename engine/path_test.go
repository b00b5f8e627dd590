package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remold-dev/remold/syntax"
)

func TestGraphPath_Roundtrip(t *testing.T) {
	tree := parseSource(t, "def f():\n    x = g(1, 2)\n")
	ancestry := NewAncestry(tree)
	arg := tree.List("body")[0].List("body")[0].Child("value").List("args")[1]

	path := PathTo(ancestry, arg)
	got, err := path.Execute(tree)
	require.NoError(t, err)
	assert.Same(t, arg, got)
}

func TestGraphPath_ExecutesAgainstRelatedTree(t *testing.T) {
	// The same route resolves in a reparsed tree with the same shape.
	source := "a = 1\nb = f(2)\n"
	first := parseSource(t, source)
	second := parseSource(t, source)

	arg := first.List("body")[1].Child("value").List("args")[0]
	path := PathTo(NewAncestry(first), arg)

	got, err := path.Execute(second)
	require.NoError(t, err)
	assert.NotSame(t, arg, got)
	assert.True(t, syntax.Equal(arg, got))
}

func TestGraphPath_KindMismatch(t *testing.T) {
	first := parseSource(t, "a = 1\n")
	second := parseSource(t, "return 1\n")

	target := first.List("body")[0].Child("value")
	path := PathTo(NewAncestry(first), target)

	_, err := path.Execute(second)
	assert.ErrorIs(t, err, errAccessFailure)
}

func TestGraphPath_MissingIndex(t *testing.T) {
	first := parseSource(t, "a = 1\nb = 2\n")
	second := parseSource(t, "a = 1\n")

	path := PathTo(NewAncestry(first), first.List("body")[1])
	_, err := path.Execute(second)
	assert.ErrorIs(t, err, errAccessFailure)
}

func TestShiftFor(t *testing.T) {
	tree := parseSource(t, "a = 1\nb = 2\n")
	ancestry := NewAncestry(tree)
	first := tree.List("body")[0]
	path := PathTo(ancestry, first)
	target := newAssign("z", 0)

	sh, ok := shiftFor(&InsertAfter{Anchor: first, Target: target}, path)
	require.True(t, ok)
	assert.Equal(t, "body", sh.field)
	assert.Equal(t, 0, sh.index)
	assert.Equal(t, 1, sh.delta)

	sh, ok = shiftFor(&InsertBefore{Anchor: first, Target: target}, path)
	require.True(t, ok)
	assert.Equal(t, -1, sh.index)
	assert.Equal(t, 1, sh.delta)

	sh, ok = shiftFor(&Erase{Node: first}, path)
	require.True(t, ok)
	assert.Equal(t, -1, sh.delta)

	_, ok = shiftFor(&Replace{Node: first, Target: target}, path)
	assert.False(t, ok)

	// A single-child anchor displaces no siblings.
	value := first.Child("value")
	_, ok = shiftFor(&InsertAfter{Anchor: value, Target: target}, PathTo(ancestry, value))
	assert.False(t, ok)
}

func TestGraphPath_Adjust(t *testing.T) {
	tree := parseSource(t, "a = 1\nb = 2\nc = 3\n")
	ancestry := NewAncestry(tree)
	body := tree.List("body")

	insertion, _ := shiftFor(&InsertAfter{Anchor: body[0], Target: newAssign("z", 0)}, PathTo(ancestry, body[0]))

	// Statements before the insertion point stay put, later ones move.
	before := PathTo(ancestry, body[0]).adjust([]shift{insertion})
	after := PathTo(ancestry, body[1]).adjust([]shift{insertion})
	assert.Equal(t, 0, before.accesses[0].index)
	assert.Equal(t, 2, after.accesses[0].index)
}

func TestGraphPath_AdjustIgnoresOtherRoutes(t *testing.T) {
	tree := parseSource(t, "def f():\n    a = 1\ndef g():\n    b = 2\n")
	ancestry := NewAncestry(tree)
	fBody := tree.List("body")[0].List("body")[0]
	gBody := tree.List("body")[1].List("body")[0]

	insertion, ok := shiftFor(&InsertAfter{Anchor: fBody, Target: newAssign("z", 0)}, PathTo(ancestry, fBody))
	require.True(t, ok)

	// g's body is a different list; its indices are untouched.
	path := PathTo(ancestry, gBody).adjust([]shift{insertion})
	assert.Equal(t, 0, path.accesses[len(path.accesses)-1].index)
}

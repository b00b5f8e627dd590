package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remold-dev/remold/syntax"
)

func resolve(t *testing.T, c *Context, node *syntax.Node) *ScopeInfo {
	t.Helper()
	info, err := c.Scope().Resolve(node)
	require.NoError(t, err)
	return info
}

func TestScope_ModuleNameReachableFromFunction(t *testing.T) {
	c := testContext(t, "x = 1\ndef f():\n    return x\n")
	assign := c.Tree.List("body")[0]
	use := c.Tree.List("body")[1].List("body")[0].Child("value")

	useScope := resolve(t, c, use)
	defScope := resolve(t, c, assign)

	assert.Equal(t, FunctionScope, useScope.Type)
	assert.Equal(t, GlobalScope, defScope.Type)
	assert.True(t, useScope.CanReach(defScope))
	require.Len(t, useScope.Lookup("x"), 1)
	assert.Same(t, assign, useScope.Lookup("x")[0])
}

func TestScope_ClassBodyInvisibleToMethods(t *testing.T) {
	c := testContext(t, "class C:\n    y = 1\n    def m(self):\n        return y\n")
	class := c.Tree.List("body")[0]
	classAssign := class.List("body")[0]
	use := class.List("body")[1].List("body")[0].Child("value")

	useScope := resolve(t, c, use)
	classScope := resolve(t, c, classAssign)

	assert.Equal(t, ClassScope, classScope.Type)
	assert.True(t, classScope.Defines("y"))
	assert.False(t, useScope.CanReach(classScope))
	assert.Nil(t, useScope.Lookup("y"))
}

func TestScope_OuterFunctionReachableFromNested(t *testing.T) {
	c := testContext(t, "def outer():\n    z = 1\n    def inner():\n        return z\n")
	outer := c.Tree.List("body")[0]
	assign := outer.List("body")[0]
	use := outer.List("body")[1].List("body")[0].Child("value")

	useScope := resolve(t, c, use)
	outerScope := resolve(t, c, assign)

	assert.True(t, useScope.CanReach(outerScope))
	require.Len(t, useScope.Lookup("z"), 1)
	assert.Same(t, assign, useScope.Lookup("z")[0])
}

func TestScope_DefinitionForms(t *testing.T) {
	source := "import os.path\n" +
		"from a import b as c\n" +
		"for i in r:\n    pass\n" +
		"with open(p) as f:\n    pass\n" +
		"try:\n    pass\nexcept E as e:\n    pass\n" +
		"(w := 1)\n" +
		"m, n = 1, 2\n"
	c := testContext(t, source)
	global := resolve(t, c, c.Tree.List("body")[0])

	for _, name := range []string{"os", "c", "i", "f", "e", "w", "m", "n"} {
		assert.True(t, global.Defines(name), "expected %q to be defined", name)
	}
	assert.False(t, global.Defines("b"), "the source name of an aliased import binds nothing")
	assert.False(t, global.Defines("os.path"))
}

func TestScope_ParamsAreLocal(t *testing.T) {
	c := testContext(t, "def f(a, b=1):\n    return a\n")
	fn := c.Tree.List("body")[0]
	body := resolve(t, c, fn.List("body")[0])

	assert.True(t, body.Defines("a"))
	assert.True(t, body.Defines("b"))
}

func TestScope_NestedBindingsAreNotLocal(t *testing.T) {
	c := testContext(t, "def f():\n    def g():\n        hidden = 1\n    return g\n")
	fn := c.Tree.List("body")[0]
	fScope := resolve(t, c, fn.List("body")[0])

	assert.True(t, fScope.Defines("g"))
	assert.False(t, fScope.Defines("hidden"))
}

func TestScope_DefaultsResolveToEnclosingScope(t *testing.T) {
	// A parameter default evaluates where the function is defined,
	// not inside it.
	c := testContext(t, "def f(a=x):\n    pass\n")
	def := c.Tree.List("body")[0].List("params")[0].Child("default")
	scope := resolve(t, c, def)
	assert.Equal(t, GlobalScope, scope.Type)
}

func TestScope_Interning(t *testing.T) {
	c := testContext(t, "def f():\n    a = 1\n    b = 2\n")
	fn := c.Tree.List("body")[0]
	first := resolve(t, c, fn.List("body")[0])
	second := resolve(t, c, fn.List("body")[1])
	assert.Same(t, first, second)
}

func TestScope_RootIsUnresolvable(t *testing.T) {
	c := testContext(t, "a = 1\n")
	_, err := c.Scope().Resolve(c.Tree)
	assert.ErrorIs(t, err, ErrRootScope)
}

func TestScope_DetachedNode(t *testing.T) {
	c := testContext(t, "a = 1\n")
	_, err := c.Scope().Resolve(syntax.NewName("ghost", syntax.Load))
	assert.Error(t, err)
}

func TestScope_QualifiedNames(t *testing.T) {
	c := testContext(t, "def outer():\n    def inner():\n        pass\nclass C:\n    def m(self):\n        pass\n")
	outer := c.Tree.List("body")[0]
	inner := outer.List("body")[0]
	class := c.Tree.List("body")[1]
	method := class.List("body")[0]

	assert.Equal(t, "<global>", resolve(t, c, outer).Name())
	assert.Equal(t, "outer", resolve(t, c, inner).Name())
	assert.Equal(t, "outer.<locals>.inner", resolve(t, c, inner.List("body")[0]).Name())
	assert.Equal(t, "C.m", resolve(t, c, method.List("body")[0]).Name())
}

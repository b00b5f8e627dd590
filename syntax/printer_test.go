package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reprint parses source and renders it back through the fast printer.
func reprint(t *testing.T, source string) string {
	t.Helper()
	return NewPrinter().Unparse(mustParse(t, source))
}

func TestPrinter_Statements(t *testing.T) {
	cases := map[string]string{
		"a=1\n":                      "a = 1",
		"a  +=  2\n":                 "a += 2",
		"a = b = 1\n":                "a = b = 1",
		"return\n":                   "return",
		"return  x\n":                "return x",
		"pass\n":                     "pass",
		"import os.path as osp,sys\n": "import os.path as osp, sys",
		"from a.b import c as d\n":   "from a.b import c as d",
		"x = f(1,  key = 2)\n":       "x = f(1, key=2)",
		"del_after = {1: 'a', 2: 'b'}\n": `del_after = {1: "a", 2: "b"}`,
	}
	for source, want := range cases {
		assert.Equal(t, want, reprint(t, source), "source %q", source)
	}
}

func TestPrinter_Clauses(t *testing.T) {
	name := func(id string) *Node { return NewName(id, Load) }
	cases := map[*Node]string{
		NewParam("a", nil):                  "a",
		NewParam("a", NewConstant(int64(1))): "a=1",
		NewAlias("os", ""):                  "os",
		NewAlias("os.path", "osp"):          "os.path as osp",
		NewWithItem(NewCall(name("open"), []*Node{NewConstant("f")}, nil), nil):        `open("f")`,
		NewWithItem(NewCall(name("open"), []*Node{NewConstant("f")}, nil), NewName("fp", Store)): `open("f") as fp`,
		NewKeyword("key", NewConstant(int64(2))):                                      "key=2",
		NewComprehension(NewName("x", Store), name("xs"), []*Node{name("x")}):         "for x in xs if x",
		NewExceptHandler(nil, "", []*Node{NewPass()}):                                 "except:\n    pass",
		NewExceptHandler(name("ValueError"), "e", []*Node{NewPass()}):                 "except ValueError as e:\n    pass",
	}
	for clause, want := range cases {
		assert.Equal(t, want, NewPrinter().Unparse(clause), "clause %s", clause.Kind)
	}
}

func TestPrinter_Blocks(t *testing.T) {
	source := "def f(a, b=1):\n  if a:\n\t\treturn b\n  elif b:\n    pass\n  else:\n    return a\n"
	want := "def f(a, b=1):\n    if a:\n        return b\n    elif b:\n        pass\n    else:\n        return a"
	assert.Equal(t, want, reprint(t, source))
}

func TestPrinter_TryAndWith(t *testing.T) {
	source := "try:\n    f()\nexcept ValueError as e:\n    pass\nexcept:\n    pass\nfinally:\n    g()\n"
	want := "try:\n    f()\nexcept ValueError as e:\n    pass\nexcept:\n    pass\nfinally:\n    g()"
	assert.Equal(t, want, reprint(t, source))

	source = "with open(p) as f, lock:\n    pass\n"
	want = "with open(p) as f, lock:\n    pass"
	assert.Equal(t, want, reprint(t, source))
}

func TestPrinter_Precedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3\n":       "1 + 2 * 3",
		"(1 + 2) * 3\n":     "(1 + 2) * 3",
		"1 - (2 - 3)\n":     "1 - (2 - 3)",
		"2 ** 3 ** 4\n":     "2 ** 3 ** 4",
		"(2 ** 3) ** 4\n":   "(2 ** 3) ** 4",
		"-x ** 2\n":         "-x ** 2",
		"(-x) ** 2\n":       "(-x) ** 2",
		"not a or b\n":      "not a or b",
		"not (a or b)\n":    "not (a or b)",
		"(a or b) and c\n":  "(a or b) and c",
		"a < b == c\n":      "a < b == c",
		"(lambda: 1)()\n":   "(lambda: 1)()",
		"lambda x: x + 1\n": "lambda x: x + 1",
		"a.b[0].c(1)\n":     "a.b[0].c(1)",
		"(a + b).c\n":       "(a + b).c",
	}
	for source, want := range cases {
		assert.Equal(t, want, reprint(t, source), "source %q", source)
	}
}

func TestPrinter_Containers(t *testing.T) {
	cases := map[string]string{
		"x = 1, 2\n":               "x = (1, 2)",
		"x = (1,)\n":               "x = (1,)",
		"x = ()\n":                 "x = ()",
		"x = [1, 2]\n":             "x = [1, 2]",
		"x = []\n":                 "x = []",
		"x = [y * 2 for y in z if y]\n": "x = [y * 2 for y in z if y]",
	}
	for source, want := range cases {
		assert.Equal(t, want, reprint(t, source), "source %q", source)
	}
}

func TestPrinter_NamedExprAlwaysParenthesized(t *testing.T) {
	assert.Equal(t, "if (n := f()):\n    pass", reprint(t, "if (n := f()):\n    pass\n"))
}

func TestPrinter_Constants(t *testing.T) {
	assert.Equal(t, "None", formatConstant(nil))
	assert.Equal(t, "True", formatConstant(true))
	assert.Equal(t, "False", formatConstant(false))
	assert.Equal(t, "-3", formatConstant(int64(-3)))
	assert.Equal(t, "2.5", formatConstant(2.5))
	assert.Equal(t, "1.0", formatConstant(1.0))
	assert.Equal(t, `"hi"`, formatConstant("hi"))
}

// Canonical output must reparse into a structurally identical tree.
func TestPrinter_Roundtrip(t *testing.T) {
	sources := []string{
		"def outer(a):\n    def inner(b=a):\n        return b\n    return inner\n",
		"class C(Base):\n    x = 1\n    def m(self):\n        return self.x\n",
		"for k, v in pairs:\n    total += v\nelse:\n    done()\n",
		"while a < 10 and not stop:\n    a = a + 1\n",
		"r = [f(x) for x in xs if x > 0 or x == -1]\n",
		"d = {1: 'a'}\nu = lambda: None\n",
	}
	for _, source := range sources {
		tree := mustParse(t, source)
		printed := NewPrinter().Unparse(tree) + "\n"
		again, err := Parse(printed)
		require.NoError(t, err, "printed %q", printed)
		assert.True(t, Equal(tree, again), "roundtrip mismatch for %q -> %q", source, printed)
	}
}

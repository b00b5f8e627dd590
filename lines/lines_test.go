package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitJoin_Identity(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"a\n",
		"a\nb",
		"a\nb\n",
		"\n\n\n",
		"a\r\nb\r\nc",
		"mixed\nconventions\r\nhere\rend",
		"\r\n",
		"no trailing newline at all",
	}
	for _, input := range inputs {
		assert.Equal(t, input, Split(input).Join(), "input %q", input)
	}
}

func TestSplit_LineBoundaries(t *testing.T) {
	b := Split("a\r\nb\rc\nd")
	require.Equal(t, 4, b.Len())
	assert.Equal(t, "a\r\n", b.At(0))
	assert.Equal(t, "b\r", b.At(1))
	assert.Equal(t, "c\n", b.At(2))
	assert.Equal(t, "d", b.At(3))
}

func TestBuffer_ContentAndTerminator(t *testing.T) {
	b := Split("a\r\nb\nc")
	assert.Equal(t, "a", b.Content(0))
	assert.Equal(t, "\r\n", b.Terminator(0))
	assert.Equal(t, "b", b.Content(1))
	assert.Equal(t, "\n", b.Terminator(1))
	assert.Equal(t, "c", b.Content(2))
	assert.Equal(t, "", b.Terminator(2))
}

func TestBuffer_Newline(t *testing.T) {
	assert.Equal(t, "\r\n", Split("a\r\nb\n").Newline())
	assert.Equal(t, "\n", Split("a\nb\r\n").Newline())
	assert.Equal(t, "\n", Split("bare").Newline())
	assert.Equal(t, "\n", Split("").Newline())
}

func TestBuffer_Replace(t *testing.T) {
	b := Split("a\nb\nc\nd\n")
	b.Replace(1, 3, []string{"x\n", "y\n", "z\n"})
	assert.Equal(t, "a\nx\ny\nz\nd\n", b.Join())
}

func TestBuffer_InsertAndDelete(t *testing.T) {
	b := Split("a\nc\n")
	b.Insert(1, "b\n")
	assert.Equal(t, "a\nb\nc\n", b.Join())
	b.Insert(b.Len(), "d\n")
	assert.Equal(t, "a\nb\nc\nd\n", b.Join())
	b.Delete(1, 3)
	assert.Equal(t, "a\nd\n", b.Join())
}

func TestBuffer_ApplyIndentation(t *testing.T) {
	b := Split("if x:\n    y = 1")
	b.ApplyIndentation("    ", "prefix ", " # suffix")
	assert.Equal(t, "    prefix if x:\n        y = 1 # suffix", b.Join())
}

func TestBuffer_ApplyIndentationSingleLine(t *testing.T) {
	b := Split("x + 1")
	b.ApplyIndentation("", "value = ", "\n")
	assert.Equal(t, "value = x + 1\n", b.Join())
}

func TestFindIndent(t *testing.T) {
	indent, rest := FindIndent("    b = ")
	assert.Equal(t, "    ", indent)
	assert.Equal(t, "b = ", rest)

	indent, rest = FindIndent("\t\t")
	assert.Equal(t, "\t\t", indent)
	assert.Equal(t, "", rest)

	indent, rest = FindIndent("x")
	assert.Equal(t, "", indent)
	assert.Equal(t, "x", rest)
}

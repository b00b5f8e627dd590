package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestTokenize_SimpleAssignment(t *testing.T) {
	tokens, err := Tokenize("x = 1\n")
	require.NoError(t, err)
	assert.Equal(t,
		[]TokenType{NameTok, OpTok, NumberTok, NewlineTok, EOFTok},
		tokenTypes(tokens))
	assert.Equal(t, "x", tokens[0].Lexeme)
	assert.Equal(t, int64(1), tokens[2].Literal)
}

func TestTokenize_Spans(t *testing.T) {
	tokens, err := Tokenize("abc = 12\n")
	require.NoError(t, err)
	assert.Equal(t, Span{Start: Pos{Line: 1, Col: 0}, End: Pos{Line: 1, Col: 3}}, tokens[0].Span)
	assert.Equal(t, Span{Start: Pos{Line: 1, Col: 4}, End: Pos{Line: 1, Col: 5}}, tokens[1].Span)
	assert.Equal(t, Span{Start: Pos{Line: 1, Col: 6}, End: Pos{Line: 1, Col: 8}}, tokens[2].Span)
}

func TestTokenize_IndentDedent(t *testing.T) {
	tokens, err := Tokenize("if x:\n    y = 1\nz = 2\n")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{
		NameTok, NameTok, OpTok, NewlineTok,
		IndentTok, NameTok, OpTok, NumberTok, NewlineTok,
		DedentTok, NameTok, OpTok, NumberTok, NewlineTok,
		EOFTok,
	}, tokenTypes(tokens))
}

func TestTokenize_DanglingDedentsAtEOF(t *testing.T) {
	tokens, err := Tokenize("if x:\n    if y:\n        pass")
	require.NoError(t, err)
	types := tokenTypes(tokens)
	// The unterminated final line still yields NEWLINE, then both
	// open blocks close.
	assert.Equal(t, []TokenType{NewlineTok, DedentTok, DedentTok, EOFTok}, types[len(types)-4:])
}

func TestTokenize_BadDedent(t *testing.T) {
	_, err := Tokenize("if x:\n    y = 1\n  z = 2\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unindent does not match")
}

func TestTokenize_BlankAndCommentLinesIgnored(t *testing.T) {
	tokens, err := Tokenize("x = 1\n\n# comment\n   \ny = 2\n")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{
		NameTok, OpTok, NumberTok, NewlineTok,
		NameTok, OpTok, NumberTok, NewlineTok,
		EOFTok,
	}, tokenTypes(tokens))
}

func TestTokenize_BracketsSuppressNewlines(t *testing.T) {
	tokens, err := Tokenize("x = (1 +\n     2)\n")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{
		NameTok, OpTok, OpTok, NumberTok, OpTok, NumberTok, OpTok, NewlineTok, EOFTok,
	}, tokenTypes(tokens))
}

func TestTokenize_LineContinuation(t *testing.T) {
	tokens, err := Tokenize("x = 1 + \\\n    2\n")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{
		NameTok, OpTok, NumberTok, OpTok, NumberTok, NewlineTok, EOFTok,
	}, tokenTypes(tokens))
}

func TestTokenize_Strings(t *testing.T) {
	tokens, err := Tokenize(`s = "he\tsaid \"hi\""` + "\n")
	require.NoError(t, err)
	require.Equal(t, StringTok, tokens[2].Type)
	assert.Equal(t, "he\tsaid \"hi\"", tokens[2].Literal)

	tokens, err = Tokenize("s = '''a\nb'''\n")
	require.NoError(t, err)
	require.Equal(t, StringTok, tokens[2].Type)
	assert.Equal(t, "a\nb", tokens[2].Literal)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := Tokenize("s = 'oops\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestTokenize_Numbers(t *testing.T) {
	tokens, err := Tokenize("a = 42; b = 3.5; c = 1e3; d = 2.5e-1\n")
	require.NoError(t, err)
	var literals []any
	for _, tok := range tokens {
		if tok.Type == NumberTok {
			literals = append(literals, tok.Literal)
		}
	}
	assert.Equal(t, []any{int64(42), 3.5, 1000.0, 0.25}, literals)
}

func TestTokenize_Operators(t *testing.T) {
	tokens, err := Tokenize("a **= b // c != d\n")
	require.NoError(t, err)
	var ops []string
	for _, tok := range tokens {
		if tok.Type == OpTok {
			ops = append(ops, tok.Lexeme)
		}
	}
	assert.Equal(t, []string{"**=", "//", "!="}, ops)
}

func TestTokenize_CommentsStripped(t *testing.T) {
	tokens, err := Tokenize("x = 1  # trailing\n")
	require.NoError(t, err)
	assert.Equal(t,
		[]TokenType{NameTok, OpTok, NumberTok, NewlineTok, EOFTok},
		tokenTypes(tokens))
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword("def"))
	assert.True(t, IsKeyword("lambda"))
	assert.False(t, IsKeyword("definitely"))
}

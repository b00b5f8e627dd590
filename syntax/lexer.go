package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType classifies a lexical token.
type TokenType int

const (
	EOFTok TokenType = iota
	NewlineTok
	IndentTok
	DedentTok
	NameTok
	NumberTok
	StringTok
	OpTok
)

var tokenTypeNames = [...]string{
	EOFTok:     "EOF",
	NewlineTok: "NEWLINE",
	IndentTok:  "INDENT",
	DedentTok:  "DEDENT",
	NameTok:    "NAME",
	NumberTok:  "NUMBER",
	StringTok:  "STRING",
	OpTok:      "OP",
}

func (t TokenType) String() string { return tokenTypeNames[t] }

// Token is a lexical token with its source span. Literal carries the
// decoded value for NUMBER and STRING tokens.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Span    Span
}

// keywords of the target language. They lex as NAME tokens, Python
// tokenizer style; the parser gives them meaning.
var keywords = map[string]bool{
	"def": true, "class": true, "return": true, "pass": true,
	"break": true, "continue": true, "if": true, "elif": true,
	"else": true, "while": true, "for": true, "in": true,
	"not": true, "and": true, "or": true, "is": true,
	"with": true, "as": true, "try": true, "except": true,
	"finally": true, "import": true, "from": true, "lambda": true,
	"True": true, "False": true, "None": true,
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool { return keywords[name] }

// ParseError is a lexical or syntactic failure at a source position.
type ParseError struct {
	Pos Pos
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// multi-byte operators, longest first so maximal munch works.
var operators = []string{
	"**=", "//=",
	"**", "//", "==", "!=", "<=", ">=", "->", ":=",
	"+=", "-=", "*=", "/=", "%=",
	"(", ")", "[", "]", "{", "}",
	",", ":", ".", ";", "=", "<", ">",
	"+", "-", "*", "/", "%", "@",
}

type lexer struct {
	src    string
	pos    int
	line   int
	col    int // byte offset within the current line
	tokens []Token

	indents     []int // indentation width stack, always starts at 0
	depth       int   // open bracket depth
	atLineStart bool
	hadTokens   bool // non-space tokens seen on the current logical line
}

// Tokenize scans source into a token stream terminated by an EOF token.
// NEWLINE, INDENT and DEDENT tokens encode the language's line and block
// structure; comments are skipped entirely (they are not grammar).
func Tokenize(source string) ([]Token, error) {
	l := &lexer{src: source, line: 1, indents: []int{0}, atLineStart: true}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) errf(format string, args ...any) error {
	return &ParseError{Pos: Pos{Line: l.line, Col: l.col}, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) emit(t TokenType, lexeme string, literal any, start Pos) {
	l.tokens = append(l.tokens, Token{
		Type:    t,
		Lexeme:  lexeme,
		Literal: literal,
		Span:    Span{Start: start, End: Pos{Line: l.line, Col: l.col}},
	})
}

func (l *lexer) run() error {
	for !l.eof() {
		if l.atLineStart && l.depth == 0 {
			if err := l.scanIndentation(); err != nil {
				return err
			}
			if l.eof() {
				break
			}
		}
		if err := l.scanToken(); err != nil {
			return err
		}
	}
	// Close the final logical line and any open blocks.
	if l.hadTokens {
		l.emit(NewlineTok, "", nil, Pos{Line: l.line, Col: l.col})
		l.hadTokens = false
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(DedentTok, "", nil, Pos{Line: l.line, Col: l.col})
	}
	l.emit(EOFTok, "", nil, Pos{Line: l.line, Col: l.col})
	return nil
}

// scanIndentation measures the leading whitespace of a fresh line,
// skipping blank and comment-only lines, and synthesizes INDENT/DEDENT
// tokens against the indentation stack. Tab stops are every 8 columns,
// matching the reference tokenizer.
func (l *lexer) scanIndentation() error {
	for {
		width := 0
		for !l.eof() {
			switch l.peek() {
			case ' ':
				width++
				l.advance()
			case '\t':
				width = (width/8 + 1) * 8
				l.advance()
			default:
				goto measured
			}
		}
	measured:
		if l.eof() {
			return nil
		}
		switch l.peek() {
		case '#':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}
			continue
		case '\n':
			l.advance()
			continue
		case '\r':
			l.advance()
			if !l.eof() && l.peek() == '\n' {
				l.advance()
			}
			continue
		}

		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			l.emit(IndentTok, "", nil, Pos{Line: l.line, Col: 0})
		case width < top:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.emit(DedentTok, "", nil, Pos{Line: l.line, Col: l.col})
			}
			if l.indents[len(l.indents)-1] != width {
				return l.errf("unindent does not match any outer indentation level")
			}
		}
		l.atLineStart = false
		return nil
	}
}

func (l *lexer) scanToken() error {
	ch := l.peek()
	switch {
	case ch == '\n':
		start := Pos{Line: l.line, Col: l.col}
		l.advance()
		if l.depth > 0 {
			return nil
		}
		if l.hadTokens {
			l.emit(NewlineTok, "\n", nil, start)
			l.hadTokens = false
		}
		l.atLineStart = true
		return nil
	case ch == '\r':
		l.advance()
		return nil
	case ch == ' ' || ch == '\t':
		l.advance()
		return nil
	case ch == '#':
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}
		return nil
	case ch == '\\':
		// Explicit line continuation.
		l.advance()
		if !l.eof() && l.peek() == '\r' {
			l.advance()
		}
		if l.eof() || l.peek() != '\n' {
			return l.errf("unexpected character after line continuation")
		}
		l.advance()
		return nil
	case ch == '"' || ch == '\'':
		return l.scanString()
	case ch >= '0' && ch <= '9':
		return l.scanNumber()
	case isNameStart(ch):
		l.scanName()
		return nil
	default:
		return l.scanOperator()
	}
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isNameByte(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

func (l *lexer) scanName() {
	start := Pos{Line: l.line, Col: l.col}
	from := l.pos
	for !l.eof() && isNameByte(l.peek()) {
		l.advance()
	}
	l.emit(NameTok, l.src[from:l.pos], nil, start)
	l.hadTokens = true
}

func (l *lexer) scanNumber() error {
	start := Pos{Line: l.line, Col: l.col}
	from := l.pos
	isFloat := false
	for !l.eof() && l.peek() >= '0' && l.peek() <= '9' {
		l.advance()
	}
	if !l.eof() && l.peek() == '.' && l.pos+1 < len(l.src) && l.src[l.pos+1] >= '0' && l.src[l.pos+1] <= '9' {
		isFloat = true
		l.advance()
		for !l.eof() && l.peek() >= '0' && l.peek() <= '9' {
			l.advance()
		}
	}
	if !l.eof() && (l.peek() == 'e' || l.peek() == 'E') {
		mark := l.pos
		l.advance()
		if !l.eof() && (l.peek() == '+' || l.peek() == '-') {
			l.advance()
		}
		if l.eof() || l.peek() < '0' || l.peek() > '9' {
			// Not an exponent after all; rewind is safe since no
			// newline can occur inside a number.
			l.col -= l.pos - mark
			l.pos = mark
		} else {
			isFloat = true
			for !l.eof() && l.peek() >= '0' && l.peek() <= '9' {
				l.advance()
			}
		}
	}
	lexeme := l.src[from:l.pos]
	var literal any
	if isFloat {
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return l.errf("invalid number literal %q", lexeme)
		}
		literal = value
	} else {
		value, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return l.errf("invalid number literal %q", lexeme)
		}
		literal = value
	}
	l.emit(NumberTok, lexeme, literal, start)
	l.hadTokens = true
	return nil
}

func (l *lexer) scanString() error {
	start := Pos{Line: l.line, Col: l.col}
	from := l.pos
	quote := l.advance()
	triple := false
	if !l.eof() && l.peek() == quote && l.pos+1 < len(l.src) && l.src[l.pos+1] == quote {
		triple = true
		l.advance()
		l.advance()
	}
	var value strings.Builder
	for {
		if l.eof() {
			return l.errf("unterminated string literal")
		}
		ch := l.advance()
		switch {
		case ch == '\\':
			if l.eof() {
				return l.errf("unterminated string literal")
			}
			esc := l.advance()
			switch esc {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '\\', '\'', '"':
				value.WriteByte(esc)
			case '\n':
				// Escaped newline inside a string is dropped.
			default:
				value.WriteByte('\\')
				value.WriteByte(esc)
			}
		case ch == quote:
			if !triple {
				l.emit(StringTok, l.src[from:l.pos], value.String(), start)
				l.hadTokens = true
				return nil
			}
			if !l.eof() && l.peek() == quote && l.pos+1 < len(l.src) && l.src[l.pos+1] == quote {
				l.advance()
				l.advance()
				l.emit(StringTok, l.src[from:l.pos], value.String(), start)
				l.hadTokens = true
				return nil
			}
			value.WriteByte(ch)
		case ch == '\n' && !triple:
			return l.errf("unterminated string literal")
		default:
			value.WriteByte(ch)
		}
	}
}

func (l *lexer) scanOperator() error {
	start := Pos{Line: l.line, Col: l.col}
	rest := l.src[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			for range op {
				l.advance()
			}
			switch op {
			case "(", "[", "{":
				l.depth++
			case ")", "]", "}":
				if l.depth > 0 {
					l.depth--
				}
			}
			l.emit(OpTok, op, nil, start)
			l.hadTokens = true
			return nil
		}
	}
	return l.errf("unexpected character %q", string(rune(l.peek())))
}

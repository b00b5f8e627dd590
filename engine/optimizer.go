package engine

import (
	"github.com/remold-dev/remold/delta"
	"github.com/remold-dev/remold/syntax"
)

// optimize narrows a freshly built action to a cheaper equivalent
// when it can prove the edit's real extent is smaller. Any failure
// along the way keeps the original action.
func optimize(action Action, c *Context) Action {
	if narrowed := renameOptimizer(action, c); narrowed != nil {
		return narrowed
	}
	return action
}

func isNamedDefinition(node *syntax.Node) bool {
	return node.Kind == syntax.FunctionDef || node.Kind == syntax.ClassDef
}

// renameOptimizer turns a Replace between two definitions that
// differ only in their name into an edit of just the identifier's
// span, leaving the hand-formatted body untouched.
func renameOptimizer(action Action, c *Context) Action {
	replace, ok := action.(*Replace)
	if !ok {
		return nil
	}
	if !isNamedDefinition(replace.Node) || !isNamedDefinition(replace.Target) {
		return nil
	}
	if replace.Node.Str("name") == replace.Target.Str("name") {
		return nil
	}

	changes, err := delta.Diff(replace.Node, replace.Target)
	if err != nil || len(changes) != 1 {
		return nil
	}
	change := changes[0]
	if change.Type != delta.FieldValue || change.Field != "name" || change.Original != replace.Node {
		return nil
	}

	span, ok := inferIdentifierPosition(c.Source, replace.Node)
	if !ok {
		return nil
	}
	return &rename{node: replace.Node, newName: replace.Target.Str("name"), span: span}
}

var definitionKeywords = map[syntax.Kind]string{
	syntax.FunctionDef: "def",
	syntax.ClassDef:    "class",
}

// inferIdentifierPosition locates the span of a definition's own name
// by tokenizing its source segment: the leading keyword, then the
// identifier.
func inferIdentifierPosition(source string, node *syntax.Node) (syntax.Span, bool) {
	segment, ok := syntax.Segment(source, node.Span)
	if !ok {
		return syntax.Span{}, false
	}
	tokens, err := syntax.Tokenize(segment)
	if err != nil {
		return syntax.Span{}, false
	}

	expected := []string{definitionKeywords[node.Kind], node.Str("name")}
	var found syntax.Token
	for _, want := range expected {
		tok, rest, ok := nextCodeToken(tokens)
		if !ok || tok.Type != syntax.NameTok || tok.Lexeme != want {
			return syntax.Span{}, false
		}
		found, tokens = tok, rest
	}

	return absoluteSpan(node.Span.Start, found.Span), true
}

func nextCodeToken(tokens []syntax.Token) (syntax.Token, []syntax.Token, bool) {
	for i, tok := range tokens {
		switch tok.Type {
		case syntax.NewlineTok, syntax.IndentTok, syntax.DedentTok:
			continue
		case syntax.EOFTok:
			return syntax.Token{}, nil, false
		default:
			return tok, tokens[i+1:], true
		}
	}
	return syntax.Token{}, nil, false
}

// absoluteSpan maps a span measured inside a segment back into file
// coordinates, given where the segment starts.
func absoluteSpan(origin syntax.Pos, relative syntax.Span) syntax.Span {
	abs := func(p syntax.Pos) syntax.Pos {
		out := syntax.Pos{Line: origin.Line + p.Line - 1, Col: p.Col}
		if p.Line == 1 {
			out.Col += origin.Col
		}
		return out
	}
	return syntax.Span{Start: abs(relative.Start), End: abs(relative.End)}
}

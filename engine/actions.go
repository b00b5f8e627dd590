package engine

import (
	"errors"
	"strings"

	"github.com/remold-dev/remold/lines"
	"github.com/remold-dev/remold/syntax"
)

// Action is one textual edit produced by a rule match. Actions are
// plain values; applying one re-synthesizes its replacement text
// through the context's unparser and splices it into the source.
type Action interface {
	Apply(c *Context, source string) (string, error)

	// anchor is the node whose span locates the edit.
	anchor() *syntax.Node
	// rebase retargets the action at a relocated anchor.
	rebase(node *syntax.Node) Action
}

var errUnpositioned = errors.New("cannot apply an action to a node without a source span")

// Replace swaps the text of Node for the unparsed form of Target.
type Replace struct {
	Node   *syntax.Node
	Target *syntax.Node
}

func (a *Replace) anchor() *syntax.Node { return a.Node }

func (a *Replace) rebase(node *syntax.Node) Action {
	return &Replace{Node: node, Target: a.Target}
}

func (a *Replace) Apply(c *Context, source string) (string, error) {
	span := a.Node.Span
	if span.IsZero() {
		return "", errUnpositioned
	}
	buf := lines.Split(source)
	start, end := span.Start.Line-1, span.End.Line-1

	indentation, startPrefix := lines.FindIndent(buf.At(start)[:span.Start.Col])
	endSuffix := buf.At(end)[span.End.Col:]

	repl := lines.Split(c.Unparse(a.Target))
	repl.ApplyIndentation(indentation, startPrefix, endSuffix)
	buf.Replace(start, end+1, repl.Lines())
	return buf.Join(), nil
}

// InsertAfter places a new statement on its own line right after the
// anchor's last line, at the anchor's indentation.
type InsertAfter struct {
	Anchor *syntax.Node
	Target *syntax.Node
}

func (a *InsertAfter) anchor() *syntax.Node { return a.Anchor }

func (a *InsertAfter) rebase(node *syntax.Node) Action {
	return &InsertAfter{Anchor: node, Target: a.Target}
}

func (a *InsertAfter) Apply(c *Context, source string) (string, error) {
	return insertStatement(c, source, a.Anchor, a.Target, false)
}

// InsertBefore places a new statement on its own line right before
// the anchor's first line, at the anchor's indentation.
type InsertBefore struct {
	Anchor *syntax.Node
	Target *syntax.Node
}

func (a *InsertBefore) anchor() *syntax.Node { return a.Anchor }

func (a *InsertBefore) rebase(node *syntax.Node) Action {
	return &InsertBefore{Anchor: node, Target: a.Target}
}

func (a *InsertBefore) Apply(c *Context, source string) (string, error) {
	return insertStatement(c, source, a.Anchor, a.Target, true)
}

func insertStatement(c *Context, source string, anchor, target *syntax.Node, before bool) (string, error) {
	span := anchor.Span
	if span.IsZero() {
		return "", errUnpositioned
	}
	buf := lines.Split(source)
	indentation, _ := lines.FindIndent(buf.At(span.Start.Line - 1)[:span.Start.Col])
	newline := buf.Newline()

	repl := lines.Split(c.Unparse(target))
	repl.ApplyIndentation(indentation, "", "")
	rendered := repl.Lines()

	at := span.End.Line
	if before {
		at = span.Start.Line - 1
	}
	atEnd := at >= buf.Len()
	if atEnd && buf.Len() > 0 && buf.Terminator(buf.Len()-1) == "" {
		// Keep the no-trailing-newline convention: terminate the old
		// final line and leave the inserted one bare.
		buf.Set(buf.Len()-1, buf.At(buf.Len()-1)+newline)
		for i := range rendered[:len(rendered)-1] {
			rendered[i] += newline
		}
	} else {
		for i := range rendered {
			rendered[i] += newline
		}
	}
	for i := len(rendered) - 1; i >= 0; i-- {
		buf.Insert(at, rendered[i])
	}
	return buf.Join(), nil
}

// Erase removes Node's text. When the statement sits alone on its
// lines the lines disappear entirely.
type Erase struct {
	Node *syntax.Node
}

func (a *Erase) anchor() *syntax.Node { return a.Node }

func (a *Erase) rebase(node *syntax.Node) Action {
	return &Erase{Node: node}
}

func (a *Erase) Apply(c *Context, source string) (string, error) {
	span := a.Node.Span
	if span.IsZero() {
		return "", errUnpositioned
	}
	buf := lines.Split(source)
	start, end := span.Start.Line-1, span.End.Line-1
	prefix := buf.At(start)[:span.Start.Col]
	suffix := buf.At(end)[span.End.Col:]

	if strings.TrimSpace(prefix) == "" && strings.TrimSpace(suffix) == "" {
		buf.Delete(start, end+1)
	} else {
		buf.Replace(start, end+1, []string{prefix + suffix})
	}
	return buf.Join(), nil
}

// rename is the optimizer's narrowed form of a Replace between two
// definitions differing only in name: it touches just the
// identifier's own span.
type rename struct {
	node    *syntax.Node
	newName string
	span    syntax.Span
}

func (a *rename) anchor() *syntax.Node { return a.node }

func (a *rename) rebase(node *syntax.Node) Action {
	return &rename{node: node, newName: a.newName, span: a.span}
}

func (a *rename) Apply(c *Context, source string) (string, error) {
	buf := lines.Split(source)
	start, end := a.span.Start.Line-1, a.span.End.Line-1
	prefix := buf.At(start)[:a.span.Start.Col]
	suffix := buf.At(end)[a.span.End.Col:]
	buf.Replace(start, end+1, []string{prefix + a.newName + suffix})
	return buf.Join(), nil
}

// Package syntax parses remold's target language — a practical,
// indentation-significant subset of Python — into a homogeneous syntax
// tree, and re-synthesizes source text from it.
//
// Every node has the same shape: a Kind tag, an ordered list of named
// fields, and an optional source span. A field value is one of three
// things: a child node (*Node, possibly nil), a list of child nodes
// ([]*Node), or an atomic leaf literal (nil, bool, int64, float64 or
// string). The uniform shape is what lets diffing, path addressing,
// cloning and walking stay generic over all node kinds.
package syntax

// Pos is a source position: 1-indexed line, 0-indexed byte column.
type Pos struct {
	Line int
	Col  int
}

// Span is a half-open source range. End is exclusive: End.Col is the
// column one past the last byte of the node on End.Line.
type Span struct {
	Start Pos
	End   Pos
}

// IsZero reports whether the span carries no position information.
func (s Span) IsZero() bool { return s == Span{} }

// Field is one named slot of a node. Value holds a *Node, a []*Node, or
// an atomic leaf literal. A nil Value is both "no child" and the leaf
// None, mirroring the target language's own tree.
type Field struct {
	Name  string
	Value any
}

// Node is a syntax tree node. Nodes belong to one immutable snapshot:
// they are never mutated in place except on a freshly Clone()-ed subtree
// being assembled as a replacement.
type Node struct {
	Kind   Kind
	Span   Span
	Fields []Field
}

// Positioned reports whether the node carries a source span.
func (n *Node) Positioned() bool { return !n.Span.IsZero() }

// Field returns the value of the named field.
func (n *Node) Field(name string) (any, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Child returns the named child node, or nil if the field is absent or
// holds no node.
func (n *Node) Child(name string) *Node {
	v, _ := n.Field(name)
	child, _ := v.(*Node)
	return child
}

// List returns the named list field, or nil if absent.
func (n *Node) List(name string) []*Node {
	v, _ := n.Field(name)
	items, _ := v.([]*Node)
	return items
}

// Str returns the named leaf as a string, or "" if absent or not a string.
func (n *Node) Str(name string) string {
	v, _ := n.Field(name)
	s, _ := v.(string)
	return s
}

// Leaf returns the named leaf literal.
func (n *Node) Leaf(name string) any {
	v, _ := n.Field(name)
	return v
}

// Set overwrites the named field. It must only be called on a branched
// (cloned) subtree; mutating a node still reachable from a live snapshot
// breaks the immutability contract.
func (n *Node) Set(name string, value any) {
	value = normalize(value)
	for i := range n.Fields {
		if n.Fields[i].Name == name {
			n.Fields[i].Value = value
			return
		}
	}
	n.Fields = append(n.Fields, Field{Name: name, Value: value})
}

// normalize collapses typed-nil children so that field presence checks
// see a single notion of "empty".
func normalize(value any) any {
	if child, ok := value.(*Node); ok && child == nil {
		return nil
	}
	return value
}

// Clone returns a deep copy of the subtree rooted at n, spans included.
// The copy is exclusively owned fresh memory ("branched") and safe to
// mutate while being built into a replacement.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Span: n.Span, Fields: make([]Field, len(n.Fields))}
	for i, f := range n.Fields {
		out.Fields[i].Name = f.Name
		switch v := f.Value.(type) {
		case *Node:
			out.Fields[i].Value = v.Clone()
		case []*Node:
			items := make([]*Node, len(v))
			for j, item := range v {
				items[j] = item.Clone()
			}
			out.Fields[i].Value = items
		default:
			out.Fields[i].Value = v
		}
	}
	return out
}

// Equal reports structural equality of two subtrees, ignoring spans.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name {
			return false
		}
		if !equalValue(a.Fields[i].Value, b.Fields[i].Value) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	switch av := a.(type) {
	case *Node:
		bv, ok := b.(*Node)
		return ok && Equal(av, bv)
	case []*Node:
		bv, ok := b.([]*Node)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Segment extracts the text covered by span from source. Returns false
// if the span does not fit the source. The first line is taken from the
// start column, so the result is dedented to the node's own indentation.
func Segment(source string, span Span) (string, bool) {
	if span.IsZero() {
		return "", false
	}
	var all []string
	start := 0
	for i := 0; i <= len(source); i++ {
		if i == len(source) || source[i] == '\n' {
			all = append(all, source[start:i])
			start = i + 1
		}
	}
	first, last := span.Start.Line-1, span.End.Line-1
	if first < 0 || last >= len(all) || first > last {
		return "", false
	}
	if span.Start.Col > len(all[first]) || span.End.Col > len(all[last]) {
		return "", false
	}
	if first == last {
		if span.Start.Col > span.End.Col {
			return "", false
		}
		return all[first][span.Start.Col:span.End.Col], true
	}
	parts := make([]string, 0, last-first+1)
	parts = append(parts, all[first][span.Start.Col:])
	for i := first + 1; i < last; i++ {
		parts = append(parts, all[i])
	}
	parts = append(parts, all[last][:span.End.Col])
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out, true
}

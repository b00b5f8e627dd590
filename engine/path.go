package engine

import (
	"fmt"

	"github.com/remold-dev/remold/syntax"
)

// access is one step of a GraphPath: follow a field, or a field plus
// a list index, and require the landing node to be of a known kind.
type access struct {
	kind  syntax.Kind
	field string
	index int
}

func (a access) execute(node *syntax.Node) (*syntax.Node, error) {
	if a.index < 0 {
		child := node.Child(a.field)
		if child == nil || child.Kind != a.kind {
			return nil, fmt.Errorf("%w: %s.%s is not a %s", errAccessFailure, node.Kind, a.field, a.kind)
		}
		return child, nil
	}
	items := node.List(a.field)
	if a.index >= len(items) {
		return nil, fmt.Errorf("%w: %s.%s has no index %d", errAccessFailure, node.Kind, a.field, a.index)
	}
	item := items[a.index]
	if item == nil || item.Kind != a.kind {
		return nil, fmt.Errorf("%w: %s.%s[%d] is not a %s", errAccessFailure, node.Kind, a.field, a.index, a.kind)
	}
	return item, nil
}

// GraphPath is the root-to-node route of field and index accesses,
// recorded against one tree and executable against a structurally
// related one.
type GraphPath struct {
	accesses []access
}

// PathTo records the route from the root down to node using the
// snapshot's parent index.
func PathTo(ancestry *Ancestry, node *syntax.Node) GraphPath {
	chain := ancestry.Chain(node)
	accesses := make([]access, len(chain))
	cursor := node
	for i, link := range chain {
		accesses[len(chain)-1-i] = access{kind: cursor.Kind, field: link.Field, index: link.Index}
		cursor = link.Parent
	}
	return GraphPath{accesses: accesses}
}

// Execute resolves the path against tree, checking the expected node
// kind at every step.
func (p GraphPath) Execute(tree *syntax.Node) (*syntax.Node, error) {
	node := tree
	for _, a := range p.accesses {
		var err error
		node, err = a.execute(node)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// shift records that an already-applied action changed the length of
// one list field: everything past index moved by delta.
type shift struct {
	prefix []access
	field  string
	index  int
	delta  int
}

// shiftFor derives the shift an action introduces, if any. The
// action's anchor path must end in a list access for a sibling count
// to have changed.
func shiftFor(action Action, path GraphPath) (shift, bool) {
	last := len(path.accesses) - 1
	if last < 0 || path.accesses[last].index < 0 {
		return shift{}, false
	}
	tail := path.accesses[last]
	base := shift{prefix: path.accesses[:last], field: tail.field}
	switch action.(type) {
	case *InsertAfter:
		base.index, base.delta = tail.index, 1
		return base, true
	case *InsertBefore:
		base.index, base.delta = tail.index-1, 1
		return base, true
	case *Erase:
		base.index, base.delta = tail.index, -1
		return base, true
	default:
		return shift{}, false
	}
}

// adjust displaces the path's indices by every shift recorded on the
// same list field of the same parent route.
func (p GraphPath) adjust(shifts []shift) GraphPath {
	adjusted := make([]access, len(p.accesses))
	copy(adjusted, p.accesses)
	for _, s := range shifts {
		at := len(s.prefix)
		if at >= len(adjusted) || adjusted[at].field != s.field || adjusted[at].index < 0 {
			continue
		}
		if !sameRoute(adjusted[:at], s.prefix) {
			continue
		}
		if s.index < adjusted[at].index {
			adjusted[at].index += s.delta
		}
	}
	return GraphPath{accesses: adjusted}
}

func sameRoute(a, b []access) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].field != b[i].field || a[i].index != b[i].index {
			return false
		}
	}
	return true
}

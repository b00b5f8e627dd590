package engine

import "github.com/remold-dev/remold/syntax"

// Link records where a node hangs off its parent: the field name it
// is stored under and, for list fields, its position there.
type Link struct {
	Field  string
	Index  int
	Parent *syntax.Node
}

// Ancestry is a per-snapshot parent index. It is built in one pass
// over the tree so rules can walk from any node back to the root.
type Ancestry struct {
	parents map[*syntax.Node]Link
}

func NewAncestry(tree *syntax.Node) *Ancestry {
	a := &Ancestry{parents: make(map[*syntax.Node]Link)}
	for _, parent := range syntax.Nodes(tree) {
		for _, field := range parent.Fields {
			switch value := field.Value.(type) {
			case *syntax.Node:
				a.parents[value] = Link{Field: field.Name, Index: -1, Parent: parent}
			case []*syntax.Node:
				for index, item := range value {
					if item != nil {
						a.parents[item] = Link{Field: field.Name, Index: index, Parent: parent}
					}
				}
			}
		}
	}
	return a
}

// Infer returns the field of the parent the node is attached under,
// and the parent itself. The root has no parent.
func (a *Ancestry) Infer(node *syntax.Node) (string, *syntax.Node) {
	link := a.parents[node]
	return link.Field, link.Parent
}

func (a *Ancestry) Parent(node *syntax.Node) *syntax.Node {
	return a.parents[node].Parent
}

// Chain returns the links from node up to the root, nearest first.
func (a *Ancestry) Chain(node *syntax.Node) []Link {
	var chain []Link
	cursor := node
	for {
		link, ok := a.parents[cursor]
		if !ok {
			return chain
		}
		chain = append(chain, link)
		cursor = link.Parent
	}
}

// Parents returns every ancestor of node, nearest first.
func (a *Ancestry) Parents(node *syntax.Node) []*syntax.Node {
	chain := a.Chain(node)
	parents := make([]*syntax.Node, len(chain))
	for i, link := range chain {
		parents[i] = link.Parent
	}
	return parents
}

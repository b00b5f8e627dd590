package syntax

// Children returns the direct child nodes of n in field declaration
// order, list items expanded in place. Nil children are skipped.
func Children(n *Node) []*Node {
	var out []*Node
	for _, f := range n.Fields {
		switch v := f.Value.(type) {
		case *Node:
			if v != nil {
				out = append(out, v)
			}
		case []*Node:
			out = append(out, v...)
		}
	}
	return out
}

// Nodes returns root and every node below it in breadth-first order,
// matching the traversal the session's matching pass relies on.
func Nodes(root *Node) []*Node {
	if root == nil {
		return nil
	}
	todo := []*Node{root}
	out := make([]*Node, 0, 16)
	for len(todo) > 0 {
		n := todo[0]
		todo = todo[1:]
		out = append(out, n)
		todo = append(todo, Children(n)...)
	}
	return out
}

// Walk calls fn for every node in breadth-first order, stopping early if
// fn returns false.
func Walk(root *Node, fn func(*Node) bool) {
	todo := []*Node{root}
	for len(todo) > 0 {
		n := todo[0]
		todo = todo[1:]
		if !fn(n) {
			return
		}
		todo = append(todo, Children(n)...)
	}
}

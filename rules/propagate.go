package rules

import (
	"github.com/remold-dev/remold/engine"
	"github.com/remold-dev/remold/syntax"
)

func init() {
	Register("propagate-constants", "replace a loaded name with its unique constant definition",
		func() engine.Rule { return &PropagateConstants{} })
}

// PropagateConstants inlines names that have exactly one reachable
// definition whose value is a constant:
//
//	a = 1        a = 1
//	b = a   =>   b = 1
type PropagateConstants struct{}

func (r *PropagateConstants) Providers() []*engine.Provider {
	return []*engine.Provider{engine.ScopeProvider}
}

func (r *PropagateConstants) Match(c *engine.Context, node *syntax.Node) ([]engine.Action, error) {
	if node.Kind != syntax.Name || node.Str("ctx") != syntax.Load {
		return nil, engine.ErrNoMatch
	}
	scope, err := c.Scope().Resolve(node)
	if err != nil {
		return nil, engine.ErrNoMatch
	}

	assignments := r.collect(c, scope, node.Str("id"))
	if len(assignments) != 1 {
		return nil, engine.ErrNoMatch
	}
	value := assignments[0].Child("value")
	if value == nil || value.Kind != syntax.Constant {
		return nil, engine.ErrNoMatch
	}
	return []engine.Action{&engine.Replace{Node: node, Target: value.Clone()}}, nil
}

// collect finds every simple single-target assignment to name whose
// own scope is reachable from the use site.
func (r *PropagateConstants) collect(c *engine.Context, scope *engine.ScopeInfo, name string) []*syntax.Node {
	var assignments []*syntax.Node
	for _, node := range syntax.Nodes(c.Tree) {
		if node.Kind != syntax.Assign {
			continue
		}
		targets := node.List("targets")
		if len(targets) != 1 || targets[0].Kind != syntax.Name || targets[0].Str("id") != name {
			continue
		}
		definedIn, err := c.Scope().Resolve(node)
		if err != nil || !scope.CanReach(definedIn) {
			continue
		}
		assignments = append(assignments, node)
	}
	return assignments
}

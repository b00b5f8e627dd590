package rules

import (
	"github.com/remold-dev/remold/engine"
	"github.com/remold-dev/remold/syntax"
)

func init() {
	Register("replace-placeholders", "replace every loaded \"placeholder\" name with the constant 42",
		func() engine.Rule { return &ReplacePlaceholders{} })
}

// ReplacePlaceholders swaps any loaded name called "placeholder" for
// the constant 42.
type ReplacePlaceholders struct{}

func (r *ReplacePlaceholders) Providers() []*engine.Provider {
	return nil
}

func (r *ReplacePlaceholders) Match(c *engine.Context, node *syntax.Node) ([]engine.Action, error) {
	if node.Kind != syntax.Name || node.Str("ctx") != syntax.Load || node.Str("id") != "placeholder" {
		return nil, engine.ErrNoMatch
	}
	return []engine.Action{
		&engine.Replace{Node: node, Target: syntax.NewConstant(int64(42))},
	}, nil
}

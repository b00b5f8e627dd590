package rules

import (
	"github.com/remold-dev/remold/engine"
	"github.com/remold-dev/remold/syntax"
)

func init() {
	Register("swap-operands", "rewrite every addition a + b into b - a",
		func() engine.Rule { return &SwapOperands{} })
}

// SwapOperands rewrites additions into reversed subtractions. It is
// mostly a demonstration of rebuilding a branched node in place.
type SwapOperands struct{}

func (r *SwapOperands) Providers() []*engine.Provider {
	return nil
}

func (r *SwapOperands) Match(c *engine.Context, node *syntax.Node) ([]engine.Action, error) {
	if node.Kind != syntax.BinOp || node.Str("op") != "+" {
		return nil, engine.ErrNoMatch
	}
	target := node.Clone()
	target.Set("op", "-")
	target.Set("left", node.Child("right").Clone())
	target.Set("right", node.Child("left").Clone())
	return []engine.Action{&engine.Replace{Node: node, Target: target}}, nil
}

package engine

import (
	"fmt"

	"github.com/remold-dev/remold/syntax"
)

const (
	// UnparserFast re-synthesizes canonical text from the tree.
	UnparserFast = "fast"
	// UnparserPrecise retrieves original text for untouched nodes.
	UnparserPrecise = "precise"
)

// Configuration controls a session's unparser backend and debugging
// behavior. The zero value selects the precise backend.
type Configuration struct {
	// Unparser selects a built-in backend by name. Ignored when
	// Custom is set.
	Unparser string

	// Custom builds an unparser for one snapshot's source text.
	Custom func(source string) syntax.Unparser

	// Debug persists unparsable generated sources to a temp file.
	Debug bool
}

func (c Configuration) backend(source string) (syntax.Unparser, error) {
	if c.Custom != nil {
		return c.Custom(source), nil
	}
	switch c.Unparser {
	case UnparserFast:
		return syntax.NewPrinter(), nil
	case UnparserPrecise, "":
		return syntax.NewPreciseUnparser(source), nil
	default:
		return nil, fmt.Errorf("unknown unparser backend %q (must be %q or %q)", c.Unparser, UnparserFast, UnparserPrecise)
	}
}

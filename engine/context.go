package engine

import (
	"fmt"

	"github.com/remold-dev/remold/syntax"
)

// Provider describes a snapshot-scoped computation that rules may
// declare as a dependency. Each provider is built at most once per
// snapshot and shared by every rule that asked for it.
type Provider struct {
	Name     string
	Requires []*Provider
	Build    func(c *Context) any
}

// AncestryProvider exposes the parent index under "ancestry".
var AncestryProvider = &Provider{
	Name: "ancestry",
	Build: func(c *Context) any {
		return NewAncestry(c.Tree)
	},
}

// ScopeProvider exposes lexical scope resolution under "scope".
var ScopeProvider = &Provider{
	Name:     "scope",
	Requires: []*Provider{AncestryProvider},
	Build: func(c *Context) any {
		return NewScope(c)
	},
}

// resolveProviders returns the transitive closure of the given
// providers with every dependency ordered before its dependents.
func resolveProviders(roots []*Provider) []*Provider {
	var ordered []*Provider
	seen := make(map[string]bool)
	var visit func(p *Provider)
	visit = func(p *Provider) {
		if seen[p.Name] {
			return
		}
		seen[p.Name] = true
		for _, dep := range p.Requires {
			visit(dep)
		}
		ordered = append(ordered, p)
	}
	for _, root := range roots {
		visit(root)
	}
	return ordered
}

// FileInfo identifies the file a source snapshot came from.
type FileInfo struct {
	Path string

	// BOM records whether the file carried a UTF-8 byte order mark,
	// so write-back can restore it.
	BOM bool
}

// Context is the knowledge base for one source snapshot: the raw
// text, the parsed tree and the providers built for it. One context
// is shared by all rules during a single scan.
type Context struct {
	Source string
	Tree   *syntax.Node
	File   *FileInfo
	Config Configuration

	unparser syntax.Unparser
	metadata map[string]any
}

func newContext(source string, tree *syntax.Node, file *FileInfo, config Configuration, providers []*Provider) (*Context, error) {
	unparser, err := config.backend(source)
	if err != nil {
		return nil, err
	}
	c := &Context{
		Source:   source,
		Tree:     tree,
		File:     file,
		Config:   config,
		unparser: unparser,
		metadata: make(map[string]any),
	}
	for _, provider := range providers {
		c.metadata[provider.Name] = provider.Build(c)
	}
	return c, nil
}

// fork derives a context for an intermediate snapshot produced while
// applying chained actions. Providers are not carried over since the
// tree they were built for is gone.
func (c *Context) fork(source string, tree *syntax.Node) (*Context, error) {
	return newContext(source, tree, c.File, c.Config, nil)
}

// Metadata returns the provider value registered under name, or an
// error when no active rule declared it.
func (c *Context) Metadata(name string) (any, error) {
	value, ok := c.metadata[name]
	if !ok {
		return nil, fmt.Errorf("provider %q is not available on this context: no active rule declared it", name)
	}
	return value, nil
}

// Ancestry returns the parent index, building it on first use.
func (c *Context) Ancestry() *Ancestry {
	if value, ok := c.metadata["ancestry"].(*Ancestry); ok {
		return value
	}
	ancestry := NewAncestry(c.Tree)
	c.metadata["ancestry"] = ancestry
	return ancestry
}

// Scope returns the scope resolver, building it on first use.
func (c *Context) Scope() *Scope {
	if value, ok := c.metadata["scope"].(*Scope); ok {
		return value
	}
	scope := NewScope(c)
	c.metadata["scope"] = scope
	return scope
}

// Unparse re-synthesizes source text for the given node using the
// configured backend.
func (c *Context) Unparse(node *syntax.Node) string {
	return c.unparser.Unparse(node)
}

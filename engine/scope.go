package engine

import (
	"errors"
	"strings"

	"github.com/remold-dev/remold/syntax"
)

type ScopeType int

const (
	GlobalScope ScopeType = iota
	ClassScope
	FunctionScope
	ComprehensionScope
)

func (t ScopeType) String() string {
	switch t {
	case GlobalScope:
		return "global"
	case ClassScope:
		return "class"
	case FunctionScope:
		return "function"
	case ComprehensionScope:
		return "comprehension"
	default:
		return "unknown"
	}
}

// ScopeInfo is one lexical scope's record: the node that introduced
// it, its kind and a link to the enclosing scope. Records are
// interned per snapshot, so two resolutions of the same scope return
// the same pointer.
type ScopeInfo struct {
	Node   *syntax.Node
	Type   ScopeType
	Parent *ScopeInfo

	definitions map[string][]*syntax.Node
}

// reachable returns this scope followed by every enclosing scope
// whose definitions it can see. Class bodies are invisible to nested
// scopes.
func (s *ScopeInfo) reachable() []*ScopeInfo {
	scopes := []*ScopeInfo{s}
	for cursor := s.Parent; cursor != nil; cursor = cursor.Parent {
		if cursor.Type == FunctionScope || cursor.Type == GlobalScope {
			scopes = append(scopes, cursor)
		}
	}
	return scopes
}

// CanReach reports whether definitions in other are visible here.
func (s *ScopeInfo) CanReach(other *ScopeInfo) bool {
	for _, scope := range s.reachable() {
		if scope == other {
			return true
		}
	}
	return false
}

// Definitions returns this scope's local definitions of name, not
// counting enclosing scopes.
func (s *ScopeInfo) Definitions(name string) []*syntax.Node {
	return s.localDefinitions()[name]
}

// Defines reports whether this scope itself defines name.
func (s *ScopeInfo) Defines(name string) bool {
	_, ok := s.localDefinitions()[name]
	return ok
}

// Lookup returns the definitions of name from the nearest reachable
// scope that has any, or nil.
func (s *ScopeInfo) Lookup(name string) []*syntax.Node {
	for _, scope := range s.reachable() {
		if defs := scope.localDefinitions()[name]; defs != nil {
			return defs
		}
	}
	return nil
}

// Name returns a dotted qualified name for this scope, such as
// "Outer.<locals>.inner".
func (s *ScopeInfo) Name() string {
	if s.Type == GlobalScope {
		return "<global>"
	}
	var part string
	switch {
	case s.Node.Kind == syntax.Lambda:
		part = "<lambda>"
	case s.Node.Kind == syntax.ListComp:
		part = "<listcomp>"
	default:
		part = s.Node.Str("name")
	}
	if s.Parent == nil || s.Parent.Type == GlobalScope {
		return part
	}
	prefix := s.Parent.Name()
	if s.Parent.Type == FunctionScope {
		prefix += ".<locals>"
	}
	return prefix + "." + part
}

// localDefinitions lazily collects every name bound directly in this
// scope, keyed by identifier. Names bound inside nested functions,
// classes or comprehensions are excluded.
func (s *ScopeInfo) localDefinitions() map[string][]*syntax.Node {
	if s.definitions != nil {
		return s.definitions
	}
	defs := make(map[string][]*syntax.Node)
	record := func(name string, node *syntax.Node) {
		if name != "" {
			defs[name] = append(defs[name], node)
		}
	}
	for _, node := range walkScope(s.Node) {
		switch node.Kind {
		case syntax.Assign:
			for _, target := range node.List("targets") {
				for _, name := range unpackTargets(target) {
					record(name, node)
				}
			}
		case syntax.NamedExpr:
			record(node.Child("target").Str("id"), node)
		case syntax.ExceptHandler:
			record(node.Str("name"), node)
		case syntax.Import, syntax.ImportFrom:
			for _, alias := range node.List("names") {
				record(boundAliasName(alias), node)
			}
		case syntax.With:
			for _, item := range node.List("items") {
				if vars := item.Child("optional_vars"); vars != nil {
					for _, name := range unpackTargets(vars) {
						record(name, node)
					}
				}
			}
		case syntax.For, syntax.Comprehension:
			for _, name := range unpackTargets(node.Child("target")) {
				record(name, node)
			}
		case syntax.FunctionDef, syntax.ClassDef:
			record(node.Str("name"), node)
		case syntax.Param:
			record(node.Str("name"), node)
		}
	}
	s.definitions = defs
	return defs
}

// boundAliasName returns the identifier an import binds: the alias
// when one is given, otherwise the first segment of the module path.
func boundAliasName(alias *syntax.Node) string {
	if asname := alias.Str("asname"); asname != "" {
		return asname
	}
	name := alias.Str("name")
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		return name[:dot]
	}
	return name
}

// unpackTargets flattens an assignment target into the identifiers
// it binds. Attribute and subscript targets render as their dotted
// source form.
func unpackTargets(target *syntax.Node) []string {
	if target == nil {
		return nil
	}
	switch target.Kind {
	case syntax.TupleExpr, syntax.ListExpr:
		var names []string
		for _, elt := range target.List("elts") {
			names = append(names, unpackTargets(elt)...)
		}
		return names
	case syntax.Name:
		return []string{target.Str("id")}
	default:
		return []string{syntax.NewPrinter().Unparse(target)}
	}
}

// walkScope yields every node in the given scope without descending
// into nested scopes. Of a nested function only its default values
// are visited, of a nested class only its bases, since those
// expressions evaluate in the enclosing scope.
func walkScope(scope *syntax.Node) []*syntax.Node {
	queue := scopeChildren(scope, false)
	var out []*syntax.Node
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		queue = append(queue, scopeChildren(node, true)...)
		out = append(out, node)
	}
	return out
}

func scopeChildren(node *syntax.Node, nested bool) []*syntax.Node {
	switch node.Kind {
	case syntax.FunctionDef, syntax.Lambda:
		if nested {
			var defaults []*syntax.Node
			for _, param := range node.List("params") {
				if def := param.Child("default"); def != nil {
					defaults = append(defaults, def)
				}
			}
			return defaults
		}
	case syntax.ClassDef:
		if nested {
			return node.List("bases")
		}
	case syntax.ListComp:
		if nested {
			return nil
		}
	}
	return syntax.Children(node)
}

// ErrRootScope is returned when scope resolution is asked about the
// module node itself.
var ErrRootScope = errors.New("cannot resolve the scope of the module root")

// Scope resolves nodes to their lexical scope. One resolver and its
// interned ScopeInfo records live exactly as long as one snapshot.
type Scope struct {
	context  *Context
	interned map[scopeKey]*ScopeInfo
}

type scopeKey struct {
	node   *syntax.Node
	typ    ScopeType
	parent *ScopeInfo
}

func NewScope(c *Context) *Scope {
	return &Scope{context: c, interned: make(map[scopeKey]*ScopeInfo)}
}

func (s *Scope) intern(node *syntax.Node, typ ScopeType, parent *ScopeInfo) *ScopeInfo {
	key := scopeKey{node: node, typ: typ, parent: parent}
	if info, ok := s.interned[key]; ok {
		return info
	}
	info := &ScopeInfo{Node: node, Type: typ, Parent: parent}
	s.interned[key] = info
	return info
}

// Resolve returns the scope record for the given node. An ancestor
// introduces a scope for the node only when the node descends from
// its body, so a function's default values resolve to the enclosing
// scope rather than to the function itself.
func (s *Scope) Resolve(node *syntax.Node) (*ScopeInfo, error) {
	if node.Kind == syntax.Module {
		return nil, ErrRootScope
	}
	ancestry := s.context.Ancestry()
	var owners []*syntax.Node
	for _, link := range ancestry.Chain(node) {
		if !link.Parent.Kind.IsContextful() {
			continue
		}
		if link.Field == "body" || link.Parent.Kind.IsComprehension() {
			owners = append(owners, link.Parent)
		}
	}

	var scope *ScopeInfo
	for i := len(owners) - 1; i >= 0; i-- {
		owner := owners[i]
		var typ ScopeType
		switch {
		case owner.Kind == syntax.Module:
			typ = GlobalScope
		case owner.Kind == syntax.ClassDef:
			typ = ClassScope
		case owner.Kind.IsFunction():
			typ = FunctionScope
		default:
			typ = ComprehensionScope
		}
		scope = s.intern(owner, typ, scope)
	}
	if scope == nil {
		return nil, errors.New("node is not attached to the current tree")
	}
	return scope, nil
}

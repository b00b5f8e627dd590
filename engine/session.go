package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/remold-dev/remold/syntax"
)

// Rule matches nodes and yields the actions to take on them.
// Returning ErrNoMatch (or no actions at all) declines the node;
// any other error aborts the whole run.
type Rule interface {
	// Providers lists the snapshot-scoped computations the rule
	// needs on the context.
	Providers() []*Provider

	Match(c *Context, node *syntax.Node) ([]Action, error)
}

// FileFilter lets a rule opt out of whole files before any matching
// happens.
type FileFilter interface {
	CheckFile(file *FileInfo) bool
}

// Session runs a set of rules over one source at a time until no
// rule matches anywhere.
type Session struct {
	Rules  []Rule
	Config Configuration
}

// NewSession returns a session running the given rules with the
// default configuration.
func NewSession(rules ...Rule) *Session {
	return &Session{Rules: rules}
}

// Run transforms source until fixpoint and returns the result. An
// unparsable input comes back unchanged; unparsable text generated
// after at least one applied change is an error.
func (s *Session) Run(source string) (string, error) {
	return s.run(source, nil)
}

func (s *Session) run(source string, file *FileInfo) (string, error) {
	rules := s.activeRules(file)
	if len(rules) == 0 {
		return source, nil
	}
	providers := s.resolveRuleProviders(rules)

	visited := map[string]bool{}
	changed := false
	for {
		tree, err := syntax.Parse(source)
		if err != nil {
			if !changed {
				return source, nil
			}
			return source, s.unparsable(source, err)
		}
		c, err := newContext(source, tree, file, s.Config, providers)
		if err != nil {
			return source, err
		}

		next, matched, err := s.scan(c, rules)
		if err != nil {
			return source, err
		}
		if !matched {
			return source, nil
		}

		visited[source] = true
		if visited[next] {
			// A previously seen form recurred: the rules are cycling,
			// settle on the current form.
			return source, nil
		}
		if next != source {
			changed = true
		}
		source = next
	}
}

// scan walks every positioned node and tries every rule, applying
// the first successful match. It reports whether a match happened.
func (s *Session) scan(c *Context, rules []Rule) (string, bool, error) {
	for _, node := range syntax.Nodes(c.Tree) {
		if node.Span.IsZero() {
			continue
		}
		for _, rule := range rules {
			actions, err := rule.Match(c, node)
			if errors.Is(err, ErrNoMatch) {
				continue
			}
			if err != nil {
				return "", false, fmt.Errorf("rule %T failed on %s: %w", rule, node.Kind, err)
			}
			if len(actions) == 0 {
				continue
			}
			next, err := s.apply(c, actions)
			if err != nil {
				return "", false, err
			}
			return next, true, nil
		}
	}
	return "", false, nil
}

func (s *Session) apply(c *Context, actions []Action) (string, error) {
	if len(actions) == 1 {
		return optimize(actions[0], c).Apply(c, c.Source)
	}
	return s.applyChain(c, actions)
}

// applyChain applies several actions from one match in order. Every
// anchor is re-located through a path recorded against the original
// tree, displaced by the list-length shifts of the actions already
// applied, so later actions land on the nodes the rule meant.
func (s *Session) applyChain(c *Context, actions []Action) (string, error) {
	ancestry := c.Ancestry()
	paths := make([]GraphPath, len(actions))
	for i, action := range actions {
		paths[i] = PathTo(ancestry, action.anchor())
	}

	source := c.Source
	current := c
	var shifts []shift
	for i, action := range actions {
		adjusted := paths[i].adjust(shifts)
		anchor, err := adjusted.Execute(current.Tree)
		if err != nil {
			return "", &OverlappingActionsError{Action: action, Index: i, Err: err}
		}
		next, err := action.rebase(anchor).Apply(current, source)
		if err != nil {
			return "", err
		}
		if sh, ok := shiftFor(action, adjusted); ok {
			shifts = append(shifts, sh)
		}

		if i == len(actions)-1 {
			return next, nil
		}
		tree, err := syntax.Parse(next)
		if err != nil {
			return "", s.unparsable(next, err)
		}
		current, err = current.fork(next, tree)
		if err != nil {
			return "", err
		}
		source = next
	}
	return source, nil
}

func (s *Session) activeRules(file *FileInfo) []Rule {
	if file == nil {
		return s.Rules
	}
	var active []Rule
	for _, rule := range s.Rules {
		if filter, ok := rule.(FileFilter); ok && !filter.CheckFile(file) {
			continue
		}
		active = append(active, rule)
	}
	return active
}

func (s *Session) resolveRuleProviders(rules []Rule) []*Provider {
	var declared []*Provider
	for _, rule := range rules {
		declared = append(declared, rule.Providers()...)
	}
	return resolveProviders(declared)
}

// unparsable wraps a parse failure of generated text, persisting the
// text to a temp file in debug mode.
func (s *Session) unparsable(source string, err error) error {
	failure := &UnparsableSourceError{Source: source, Err: err}
	if s.Config.Debug {
		if tmp, werr := os.CreateTemp("", "remold-*.py"); werr == nil {
			if _, werr = tmp.WriteString(source); werr == nil {
				failure.TempFile = tmp.Name()
			}
			tmp.Close()
		}
	}
	return failure
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RunFile transforms one file and returns its change record, or nil
// when the file is unchanged or was not parsable to begin with.
func (s *Session) RunFile(path string) (*Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file := &FileInfo{Path: path, BOM: bytes.HasPrefix(data, utf8BOM)}
	if file.BOM {
		data = data[len(utf8BOM):]
	}
	source := string(data)

	out, err := s.run(source, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if out == source {
		return nil, nil
	}
	return &Change{File: file, Original: source, Transformed: out}, nil
}

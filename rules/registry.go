// Package rules ships the built-in transformation rules and a
// registry the command line uses to enable them by name.
package rules

import (
	"fmt"
	"sort"

	"github.com/remold-dev/remold/engine"
)

type entry struct {
	name        string
	description string
	build       func() engine.Rule
}

var registry = map[string]entry{}

// Register adds a rule factory under the given name. Registering the
// same name twice panics, since it hides one of the two rules.
func Register(name, description string, build func() engine.Rule) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("rule %q registered twice", name))
	}
	registry[name] = entry{name: name, description: description, build: build}
}

// Build instantiates the named rules, or every registered rule when
// names is empty.
func Build(names []string) ([]engine.Rule, error) {
	if len(names) == 0 {
		names = Names()
	}
	rules := make([]engine.Rule, 0, len(names))
	for _, name := range names {
		e, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown rule %q (run \"remold list\" for the available rules)", name)
		}
		rules = append(rules, e.build())
	}
	return rules, nil
}

// Names returns every registered rule name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the registered description for name.
func Describe(name string) string {
	return registry[name].description
}

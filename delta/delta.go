// Package delta computes structural change sets between two trees of
// the same origin, answering what a transformation touched rather
// than producing a textual diff.
package delta

import (
	"errors"
	"fmt"

	"github.com/remold-dev/remold/syntax"
)

// ErrIncomplete reports that two values were too dissimilar in shape
// for a field-level comparison.
var ErrIncomplete = errors.New("change sets could not be computed completely")

type ChangeType int

const (
	// Full marks a node replaced outright, kind and all.
	Full ChangeType = iota
	// FieldAddition marks a field that gained a value.
	FieldAddition
	// FieldRemoval marks a field that lost its value.
	FieldRemoval
	// FieldValue marks a leaf field whose value changed.
	FieldValue
	// FieldSize marks a list field whose length changed.
	FieldSize
	// ItemValue marks a list item replaced by a different node.
	ItemValue
)

func (t ChangeType) String() string {
	switch t {
	case Full:
		return "FULL"
	case FieldAddition:
		return "FIELD_ADDITION"
	case FieldRemoval:
		return "FIELD_REMOVAL"
	case FieldValue:
		return "FIELD_VALUE"
	case FieldSize:
		return "FIELD_SIZE"
	case ItemValue:
		return "ITEM_VALUE"
	default:
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
}

// ChangeSet pins a single observed difference to the node it occurred
// on. Original and New are the node pair being compared; Field names
// the affected field where one applies, and Index the affected list
// position. Index is -1 when the change is not about a list item.
type ChangeSet struct {
	Type     ChangeType
	Original *syntax.Node
	New      *syntax.Node
	Field    string
	Index    int
}

func (c ChangeSet) String() string {
	if c.Field != "" {
		return fmt.Sprintf("%s(%s.%s)", c.Type, c.Original.Kind, c.Field)
	}
	return fmt.Sprintf("%s(%s)", c.Type, c.Original.Kind)
}

// Diff compares candidate against baseline and returns every change
// needed to turn baseline into candidate. Two different kinds
// collapse into one Full change with no recursion below it.
func Diff(baseline, candidate *syntax.Node) ([]ChangeSet, error) {
	var changes []ChangeSet
	if err := diff(baseline, candidate, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

// isConstantField reports fields that carry an arbitrary literal, for
// which a nil value is a value rather than an absence.
func isConstantField(kind syntax.Kind, field string) bool {
	return kind == syntax.Constant && field == "value"
}

func diff(baseline, candidate *syntax.Node, out *[]ChangeSet) error {
	if baseline.Kind != candidate.Kind {
		*out = append(*out, ChangeSet{Type: Full, Original: baseline, New: candidate, Index: -1})
		return nil
	}

	for i, bf := range baseline.Fields {
		if i >= len(candidate.Fields) || candidate.Fields[i].Name != bf.Name {
			return ErrIncomplete
		}
		bv, cv := bf.Value, candidate.Fields[i].Value

		if !isConstantField(baseline.Kind, bf.Name) {
			if bv == nil && cv != nil {
				*out = append(*out, ChangeSet{Type: FieldAddition, Original: baseline, New: candidate, Field: bf.Name, Index: -1})
				continue
			}
			if bv != nil && cv == nil {
				*out = append(*out, ChangeSet{Type: FieldRemoval, Original: baseline, New: candidate, Field: bf.Name, Index: -1})
				continue
			}
		}

		switch base := bv.(type) {
		case *syntax.Node:
			next, ok := cv.(*syntax.Node)
			if !ok {
				return ErrIncomplete
			}
			if err := diff(base, next, out); err != nil {
				return err
			}
		case []*syntax.Node:
			next, ok := cv.([]*syntax.Node)
			if !ok {
				return ErrIncomplete
			}
			if err := diffSequence(baseline, candidate, bf.Name, base, next, out); err != nil {
				return err
			}
		default:
			if bv != cv {
				*out = append(*out, ChangeSet{Type: FieldValue, Original: baseline, New: candidate, Field: bf.Name, Index: -1})
			}
		}
	}
	return nil
}

func diffSequence(baseline, candidate *syntax.Node, field string, base, next []*syntax.Node, out *[]ChangeSet) error {
	if len(base) != len(next) {
		*out = append(*out, ChangeSet{Type: FieldSize, Original: baseline, New: candidate, Field: field, Index: -1})
		return nil
	}
	for index, baseItem := range base {
		newItem := next[index]
		if baseItem == nil || newItem == nil {
			if baseItem != newItem {
				*out = append(*out, ChangeSet{Type: Full, Original: baseline, New: candidate, Field: field, Index: index})
			}
			continue
		}
		if err := diff(baseItem, newItem, out); err != nil {
			return err
		}
	}
	return nil
}

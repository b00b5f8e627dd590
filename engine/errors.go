package engine

import (
	"errors"
	"fmt"
)

// ErrNoMatch is the expected way for a rule to decline a node. The
// session treats it exactly like returning no actions; any other
// error from a rule aborts the run.
var ErrNoMatch = errors.New("rule did not match")

// errAccessFailure reports a graph path step that did not resolve to
// a node of the expected kind.
var errAccessFailure = errors.New("node access failed")

// UnparsableSourceError is returned when applied actions produced
// text that no longer parses. It carries the generated source for
// diagnosing the faulty rule, and the path of a temp file holding it
// when debug mode is on.
type UnparsableSourceError struct {
	Source   string
	TempFile string
	Err      error
}

func (e *UnparsableSourceError) Error() string {
	msg := fmt.Sprintf("generated source is unparsable: %v", e.Err)
	if e.TempFile != "" {
		msg += fmt.Sprintf(" (generated source saved to %s)", e.TempFile)
	}
	return msg
}

func (e *UnparsableSourceError) Unwrap() error {
	return e.Err
}

// OverlappingActionsError is returned when a chained action's anchor
// can no longer be located after earlier actions from the same match
// rewrote the tree around it.
type OverlappingActionsError struct {
	Action Action
	Index  int
	Err    error
}

func (e *OverlappingActionsError) Error() string {
	return fmt.Sprintf("chained action %d overlaps with an earlier action: %v", e.Index, e.Err)
}

func (e *OverlappingActionsError) Unwrap() error {
	return e.Err
}

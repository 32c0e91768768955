package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: transition needs from, to and event")
	ErrInvalidEvent      = errors.New("statemachine: nil event")
	ErrNoTransition      = errors.New("statemachine: no transition defined")
	ErrGuardRejected     = errors.New("statemachine: rejected by guards")
)

// TransitionError reports why Fire could not move from State on Event.
// Reason is ErrNoTransition or ErrGuardRejected and is matched by errors.Is.
type TransitionError struct {
	State  string
	Event  string
	Reason error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s on %s", e.Reason, e.State, e.Event)
}

func (e *TransitionError) Unwrap() error { return e.Reason }

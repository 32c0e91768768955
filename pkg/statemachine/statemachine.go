package statemachine

import (
	"context"
)

// State is a node of the machine.
type State interface {
	Name() string
}

// Event triggers a transition.
type Event interface {
	Name() string
}

// Action runs while a transition fires. Returning an error aborts the transition
// and leaves the machine in its previous state.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard decides at fire time whether a transition may be taken.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Transition moves the machine from From to To on Event.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // all must pass
	Actions []Action // run in order before the state changes
}

// StateMachine is a finite state machine safe for concurrent use.
type StateMachine interface {
	Current() State
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
	// Available lists the events that can fire from the current state, in
	// the order their transitions were added.
	Available(ctx context.Context, data any) []Event
}

// StringState is a State named by its value.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is an Event named by its value.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }

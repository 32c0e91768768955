package statemachine

import (
	"errors"
	"fmt"
)

// Option configures a machine during construction.
type Option func(*machine) error

// TransitionOption attaches guards or actions to a single transition.
type TransitionOption func(*Transition)

// TransitionDef describes a transition for WithTransitions.
type TransitionDef = Transition

// New creates a machine positioned at initial.
func New(initial State, opts ...Option) (StateMachine, error) {
	if initial == nil {
		return nil, errors.New("initial state cannot be nil")
	}

	m := newMachine(initial)
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is like New but panics on error.
func MustNew(initial State, opts ...Option) StateMachine {
	sm, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return sm
}

// WithTransition adds one transition.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *machine) error {
		t := Transition{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return m.add(t)
	}
}

// WithTransitions adds a table of transitions.
func WithTransitions(defs []TransitionDef) Option {
	return func(m *machine) error {
		for i, t := range defs {
			if err := m.add(t); err != nil {
				return fmt.Errorf("transition[%d] %s->%s on %s: %w",
					i, nameOf(t.From), nameOf(t.To), nameOf(t.Event), err)
			}
		}
		return nil
	}
}

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard(g Guard) TransitionOption {
	return func(t *Transition) {
		if g != nil {
			t.Guards = append(t.Guards, g)
		}
	}
}

// WithAction adds an action to a transition. Nil actions are ignored.
func WithAction(a Action) TransitionOption {
	return func(t *Transition) {
		if a != nil {
			t.Actions = append(t.Actions, a)
		}
	}
}

func nameOf(n interface{ Name() string }) string {
	if n == nil {
		return "<nil>"
	}
	return n.Name()
}

package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// machine indexes transitions by source state and event name.
type machine struct {
	mu          sync.RWMutex
	current     State
	transitions map[string]map[string][]Transition
	events      map[string][]Event // per source state, first-seen order
}

func newMachine(initial State) *machine {
	return &machine{
		current:     initial,
		transitions: make(map[string]map[string][]Transition),
		events:      make(map[string][]Event),
	}
}

func (m *machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *machine) add(t Transition) error {
	if t.From == nil || t.To == nil || t.Event == nil {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	from, ev := t.From.Name(), t.Event.Name()
	byEvent, ok := m.transitions[from]
	if !ok {
		byEvent = make(map[string][]Transition)
		m.transitions[from] = byEvent
	}
	if _, seen := byEvent[ev]; !seen {
		m.events[from] = append(m.events[from], t.Event)
	}
	// several transitions per event allow guard-based branching
	byEvent[ev] = append(byEvent[ev], t)
	return nil
}

// match returns the first transition for event whose guards pass.
// Must be called with the lock held.
func (m *machine) match(ctx context.Context, event Event, data any) (*Transition, error) {
	from, ev := m.current.Name(), event.Name()
	candidates := m.transitions[from][ev]
	if len(candidates) == 0 {
		return nil, &TransitionError{State: from, Event: ev, Reason: ErrNoTransition}
	}
	for i := range candidates {
		if guardsPass(ctx, candidates[i].Guards, m.current, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &TransitionError{State: from, Event: ev, Reason: ErrGuardRejected}
}

func (m *machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.match(ctx, event, data)
	if err != nil {
		return err
	}
	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}
	m.current = t.To
	return nil
}

func (m *machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.match(ctx, event, data)
	return err == nil
}

func (m *machine) Available(ctx context.Context, data any) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Event
	for _, ev := range m.events[m.current.Name()] {
		if _, err := m.match(ctx, ev, data); err == nil {
			out = append(out, ev)
		}
	}
	return out
}

func guardsPass(ctx context.Context, guards []Guard, from State, event Event, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}

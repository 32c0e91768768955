package paywall

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrymomot/creatorkit/pkg/statemachine"
)

// LifecycleState names the state of a Subscription record:
// "free", "<tier>_active" or "<tier>_inactive".
type LifecycleState string

func (s LifecycleState) Name() string { return string(s) }

const StateFree LifecycleState = "free"

func stateFor(tier Tier, active bool) LifecycleState {
	switch {
	case tier == TierFree && active:
		return StateFree
	case active:
		return LifecycleState(string(tier) + "_active")
	default:
		return LifecycleState(string(tier) + "_inactive")
	}
}

const (
	eventCancel = statemachine.StringEvent("cancel")
	eventReset  = statemachine.StringEvent("reset")
)

const (
	upgradePrefix  = "upgrade:"
	activatePrefix = "activate:"
)

func eventUpgrade(t Tier) statemachine.Event {
	return statemachine.StringEvent(upgradePrefix + string(t))
}

// eventActivate is fired by billing events; no charge is made.
func eventActivate(t Tier) statemachine.Event {
	return statemachine.StringEvent(activatePrefix + string(t))
}

// pendingWrite is the payload handed to the persist action.
type pendingWrite struct {
	store Store
	next  Subscription
}

// persist writes the prepared record once the machine has accepted the transition.
func persist(ctx context.Context, _, to statemachine.State, _ statemachine.Event, data any) error {
	w, ok := data.(*pendingWrite)
	if !ok || w == nil {
		return ErrInvalidTransition
	}
	if got := w.next.State(); got.Name() != to.Name() {
		return fmt.Errorf("%w: record state %s does not match target %s", ErrInvalidTransition, got, to.Name())
	}
	return w.store.Write(ctx, w.next)
}

// lifecycleTransitions lists every allowed transition:
//   - any state can upgrade to or be activated at a paid tier
//   - an active record can be cancelled, keeping its tier
//   - any state can be reset to free
var lifecycleTransitions = sync.OnceValue(func() []statemachine.TransitionDef {
	var states []LifecycleState
	for _, t := range Tiers() {
		states = append(states, stateFor(t, true), stateFor(t, false))
	}

	var defs []statemachine.TransitionDef
	add := func(from, to LifecycleState, ev statemachine.Event) {
		defs = append(defs, statemachine.TransitionDef{
			From:    from,
			To:      to,
			Event:   ev,
			Actions: []statemachine.Action{persist},
		})
	}

	for _, from := range states {
		for _, t := range Tiers() {
			if t.IsPaid() {
				add(from, stateFor(t, true), eventUpgrade(t))
				add(from, stateFor(t, true), eventActivate(t))
			}
		}
		add(from, StateFree, eventReset)
	}
	for _, t := range Tiers() {
		add(stateFor(t, true), stateFor(t, false), eventCancel)
	}
	return defs
})

// machineFor returns a lifecycle machine positioned at the state of sub.
func machineFor(sub Subscription) (statemachine.StateMachine, error) {
	return statemachine.New(sub.State(), statemachine.WithTransitions(lifecycleTransitions()))
}

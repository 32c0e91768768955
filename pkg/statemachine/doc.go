// Package statemachine implements a small finite state machine with guarded
// transitions and side-effect actions.
//
// States and events are any types with a Name method; StringState and
// StringEvent cover the common case. Transitions are looked up by source state
// and event name. When several transitions share a source and event, the first
// one whose guards all pass is taken. Actions run in order before the state
// changes; the first failing action aborts the transition.
//
//	const (
//		active   = statemachine.StringState("premium_active")
//		inactive = statemachine.StringState("premium_inactive")
//		cancel   = statemachine.StringEvent("cancel")
//	)
//
//	sm := statemachine.MustNew(active,
//		statemachine.WithTransition(active, inactive, cancel,
//			statemachine.WithAction(persist),
//		),
//	)
//	err := sm.Fire(ctx, cancel, record)
//
// # Errors
//
// Fire returns a *TransitionError wrapping ErrNoTransition when nothing is
// defined for the current state and event, or ErrGuardRejected when guards
// vetoed every candidate. Action errors are wrapped and can be matched with errors.Is.
package statemachine

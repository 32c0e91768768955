package paywall

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/creatorkit/pkg/logger"
)

// Clock returns the current time. Injected so expiration can be tested deterministically.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// Evaluator answers access questions against the record held in a Store.
// It re-reads the store on every call; decisions are never cached.
type Evaluator struct {
	store Store
	now   Clock
	log   *slog.Logger
}

// NewEvaluator creates an Evaluator. Panics if store is nil.
func NewEvaluator(store Store, opts ...Option) *Evaluator {
	if store == nil {
		panic("paywall: Store is required")
	}
	o := newOptions(opts...)
	return &Evaluator{store: store, now: o.clock, log: o.log}
}

// CheckAccess decides whether the viewer may see content requiring tier.
// Panics if tier is not a defined tier.
func (e *Evaluator) CheckAccess(ctx context.Context, tier Tier) AccessDecision {
	if !tier.Valid() {
		panic(fmt.Errorf("%w: %q", ErrInvalidTier, string(tier)))
	}
	if tier == TierFree {
		return Evaluate(tier, Subscription{}, e.now())
	}

	d := Evaluate(tier, e.store.Read(ctx), e.now())
	if !d.CanView {
		e.log.DebugContext(ctx, "access denied",
			logger.Tier(string(tier)), logger.Reason(d.Reason))
	}
	return d
}

// CheckGate evaluates a content gate. Non-premium gates always allow access.
func (e *Evaluator) CheckGate(ctx context.Context, gate ContentGate) (AccessDecision, error) {
	if err := gate.Validate(); err != nil {
		return AccessDecision{}, err
	}
	return e.CheckAccess(ctx, gate.EffectiveTier()), nil
}

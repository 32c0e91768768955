package paywall

import (
	"errors"
	"slices"
	"time"
)

// Subscription is the single persisted record describing the viewer's access.
// Every transition writes a complete record; it is never updated field by field.
type Subscription struct {
	Tier      Tier
	IsActive  bool
	ExpiresAt *time.Time // nil means the subscription does not expire
	Features  []Feature

	// Version is managed by the Store and used for compare-and-swap writes.
	// Callers pass back the version they read.
	Version uint64
}

// DefaultSubscription returns the record used when nothing durable exists:
// free tier, active, no expiration.
func DefaultSubscription() Subscription {
	return Subscription{
		Tier:     TierFree,
		IsActive: true,
		Features: FeaturesFor(TierFree),
	}
}

// IsValidAt reports whether the subscription can be used for access checks at now.
// Expiration is evaluated lazily, so the answer may change as time passes.
func (s Subscription) IsValidAt(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}

// HasFeature is an exact-membership test against the stored feature set.
// It does not check validity; see Entitlements.HasFeature.
func (s Subscription) HasFeature(f Feature) bool {
	return slices.Contains(s.Features, f)
}

// State returns the lifecycle state of the record.
func (s Subscription) State() LifecycleState {
	return stateFor(s.Tier, s.IsActive)
}

// Validate checks the record invariants: a known tier and exactly that tier's features.
func (s Subscription) Validate() error {
	if !s.Tier.Valid() {
		return errors.Join(ErrInvalidSubscription, ErrInvalidTier)
	}
	if !sameFeatures(s.Tier, s.Features) {
		return ErrInvalidSubscription
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (s Subscription) Clone() Subscription {
	c := s
	c.Features = slices.Clone(s.Features)
	if s.ExpiresAt != nil {
		exp := *s.ExpiresAt
		c.ExpiresAt = &exp
	}
	return c
}

// activeSubscription builds the record written by a successful upgrade.
func activeSubscription(tier Tier, now time.Time) Subscription {
	exp := now.AddDate(0, 1, 0).UTC()
	return Subscription{
		Tier:      tier,
		IsActive:  true,
		ExpiresAt: &exp,
		Features:  FeaturesFor(tier),
	}
}

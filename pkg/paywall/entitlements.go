package paywall

import (
	"context"
	"slices"
)

// Entitlements resolves feature flags from the stored record.
// A feature is granted only when it is listed in the record and the
// record is currently valid; no tier-order comparison is involved.
type Entitlements struct {
	store Store
	now   Clock
}

// NewEntitlements creates an Entitlements resolver. Panics if store is nil.
func NewEntitlements(store Store, opts ...Option) *Entitlements {
	if store == nil {
		panic("paywall: Store is required")
	}
	o := newOptions(opts...)
	return &Entitlements{store: store, now: o.clock}
}

// HasFeature reports whether the feature is currently granted.
func (e *Entitlements) HasFeature(ctx context.Context, f Feature) bool {
	sub := e.store.Read(ctx)
	return sub.IsValidAt(e.now()) && sub.HasFeature(f)
}

// Features returns the currently granted features, or nil if the record is not valid.
func (e *Entitlements) Features(ctx context.Context) []Feature {
	sub := e.store.Read(ctx)
	if !sub.IsValidAt(e.now()) {
		return nil
	}
	return slices.Clone(sub.Features)
}

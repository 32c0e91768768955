// Package paywall decides whether a viewer may see gated content, based on a
// single persisted subscription record, a fixed tier order and time-based
// expiration.
//
// # Architecture
//
//   - Tier: closed, totally ordered set of levels (free < premium < pro)
//   - Subscription: the one record per viewer; features always equal the
//     static mapping for its tier
//   - Store: versioned read/write of the record over a byte-level Backend
//   - Evaluator: tier-based access decisions for content and ContentGates
//   - Entitlements: exact-membership feature flags
//   - Manager: lifecycle transitions (upgrade, cancel, reset) and billing events
//   - BillingProvider: charges a tier; SimulatedProvider and PaddleProvider are included
//   - Service: facade combining the above over one Store
//
// Free content is never gated. For any other tier a record is usable only if it
// is active and not expired; expiration is checked at read time, so a decision
// may change as time passes and must not be cached beyond a single check.
//
// # Storage
//
// The record is stored as JSON under one key. Every write is a compare-and-swap
// against the version that was read; concurrent writers get ErrVersionConflict
// and Manager retries with a fresh read. A corrupt record reads as the default
// free record and is replaced by the next write. When the backend is
// unreachable, reads return the default and writes are skipped without error.
//
//	store := paywall.NewStore(paywall.NewMemoryBackend())
//	svc := paywall.NewService(store, paywall.NewSimulatedProvider())
//
//	d := svc.CheckAccess(ctx, paywall.TierPremium)
//	if !d.CanView {
//		fmt.Println(d.Reason) // "requires premium subscription"
//	}
//
//	if _, err := svc.Upgrade(ctx, paywall.TierPremium); err != nil {
//		// errors.Is(err, paywall.ErrUpgradeFailed); the record is unchanged
//	}
//
// Backends for Redis, PostgreSQL, MongoDB and S3 live in their own packages and
// satisfy Backend.
//
// # Error Handling
//
// Requesting an undefined tier is a programming error: CheckAccess panics and
// the other entry points return ErrInvalidTier. A failed charge returns an error
// matching ErrUpgradeFailed whose message is suitable for display.
//
// This engine is an advisory gate. Protected payloads must still be authorized
// on the server that serves them.
package paywall

package paywall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrymomot/creatorkit/pkg/async"
	"github.com/dmitrymomot/creatorkit/pkg/cache"
	"github.com/dmitrymomot/creatorkit/pkg/logger"
	"github.com/dmitrymomot/creatorkit/pkg/statemachine"
)

const conflictBackoff = 10 * time.Millisecond

// Manager drives subscription lifecycle transitions. Every transition is a
// versioned write of a complete record; version conflicts re-read and retry.
type Manager struct {
	store       Store
	provider    BillingProvider
	catalog     *Catalog
	now         Clock
	log         *slog.Logger
	maxRetries  uint64
	cancelDelay time.Duration
	seen        *cache.LRU[string, struct{}]
}

// NewManager creates a Manager. Panics if store or provider is nil.
func NewManager(store Store, provider BillingProvider, opts ...Option) *Manager {
	if store == nil {
		panic("paywall: Store is required")
	}
	if provider == nil {
		panic("paywall: BillingProvider is required")
	}
	o := newOptions(opts...)
	return &Manager{
		store:       store,
		provider:    provider,
		catalog:     o.catalog,
		now:         o.clock,
		log:         o.log,
		maxRetries:  o.maxRetries,
		cancelDelay: o.cancelDelay,
		seen:        cache.NewLRU[string, struct{}](o.eventCacheSize),
	}
}

// Upgrade charges the viewer for tier and, once the charge succeeds, writes an
// active record for that tier expiring one month from now.
//
// A failed charge leaves the stored record untouched and returns an error
// matching ErrUpgradeFailed. If the provider requires a hosted checkout, a
// *CheckoutRequiredError is returned and nothing is written.
func (m *Manager) Upgrade(ctx context.Context, tier Tier) (Subscription, error) {
	if !tier.Valid() {
		return Subscription{}, fmt.Errorf("%w: %q", ErrInvalidTier, string(tier))
	}
	if !tier.IsPaid() {
		return Subscription{}, ErrNotUpgradable
	}
	price, ok := m.catalog.Price(tier)
	if !ok {
		return Subscription{}, fmt.Errorf("%w: no price for %s", ErrNotUpgradable, tier)
	}

	receipt, err := m.provider.Charge(ctx, ChargeRequest{Tier: tier, Price: price})
	if err != nil {
		m.log.WarnContext(ctx, "upgrade charge failed",
			logger.Tier(string(tier)), logger.Error(err))
		return Subscription{}, errors.Join(ErrUpgradeFailed, err)
	}
	if receipt != nil && receipt.CheckoutURL != "" {
		m.log.InfoContext(ctx, "upgrade awaiting hosted checkout",
			logger.Tier(string(tier)), logger.ReceiptID(receipt.ID))
		return Subscription{}, &CheckoutRequiredError{URL: receipt.CheckoutURL, ReceiptID: receipt.ID}
	}

	// The viewer has paid; the write must not be abandoned with the request.
	sub, err := m.transition(context.WithoutCancel(ctx), eventUpgrade(tier), func(Subscription) Subscription {
		return activeSubscription(tier, m.now())
	})
	if err != nil {
		return Subscription{}, err
	}

	attrs := []any{logger.Tier(string(tier)), logger.Version(sub.Version)}
	if receipt != nil {
		attrs = append(attrs, logger.ReceiptID(receipt.ID))
	}
	m.log.InfoContext(ctx, "subscription upgraded", attrs...)
	return sub, nil
}

// UpgradeAsync runs Upgrade in the background.
func (m *Manager) UpgradeAsync(ctx context.Context, tier Tier) *async.Future[Subscription] {
	return async.Async(ctx, tier, m.Upgrade)
}

// Cancel marks the record inactive, keeping its tier and features. Cancelling
// an inactive record is a no-op that returns the current record.
func (m *Manager) Cancel(ctx context.Context) (Subscription, error) {
	if m.cancelDelay > 0 {
		timer := time.NewTimer(m.cancelDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Subscription{}, ctx.Err()
		case <-timer.C:
		}
	}
	return m.deactivate(context.WithoutCancel(ctx), "subscription cancelled")
}

// CancelAsync runs Cancel in the background.
func (m *Manager) CancelAsync(ctx context.Context) *async.Future[Subscription] {
	return async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (Subscription, error) {
		return m.Cancel(ctx)
	})
}

// ResetToDefault replaces the record with the default free record.
func (m *Manager) ResetToDefault(ctx context.Context) (Subscription, error) {
	sub, err := m.transition(ctx, eventReset, func(Subscription) Subscription {
		return DefaultSubscription()
	})
	if err != nil {
		return Subscription{}, err
	}
	m.log.InfoContext(ctx, "subscription reset", logger.Version(sub.Version))
	return sub, nil
}

// AvailableActions lists the viewer-initiated transitions allowed from the
// current record, such as "upgrade:pro", "cancel" and "reset".
func (m *Manager) AvailableActions(ctx context.Context) []string {
	sm, err := machineFor(m.store.Read(ctx))
	if err != nil {
		return nil
	}
	var out []string
	for _, ev := range sm.Available(ctx, nil) {
		if !strings.HasPrefix(ev.Name(), activatePrefix) {
			out = append(out, ev.Name())
		}
	}
	return out
}

func (m *Manager) deactivate(ctx context.Context, msg string) (Subscription, error) {
	if current := m.store.Read(ctx); !current.IsActive {
		return current, nil
	}

	sub, err := m.transition(ctx, eventCancel, func(current Subscription) Subscription {
		next := current.Clone()
		next.IsActive = false
		return next
	})
	if err != nil {
		// a concurrent writer may already have deactivated the record
		if errors.Is(err, ErrInvalidTransition) {
			if current := m.store.Read(ctx); !current.IsActive {
				return current, nil
			}
		}
		return Subscription{}, err
	}
	m.log.InfoContext(ctx, msg, logger.Tier(string(sub.Tier)), logger.Version(sub.Version))
	return sub, nil
}

// transition reads the record, validates event against its lifecycle state and
// writes the record produced by build. Version conflicts are retried with a
// fresh read up to maxRetries times.
func (m *Manager) transition(ctx context.Context, event statemachine.Event, build func(current Subscription) Subscription) (Subscription, error) {
	var written Subscription
	backoff := retry.WithMaxRetries(m.maxRetries, retry.NewConstant(conflictBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		current := m.store.Read(ctx)
		sm, err := machineFor(current)
		if err != nil {
			return err
		}
		if !sm.CanFire(ctx, event, nil) {
			return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event.Name(), current.State())
		}

		next := build(current)
		next.Version = current.Version
		if err := sm.Fire(ctx, event, &pendingWrite{store: m.store, next: next}); err != nil {
			if errors.Is(err, ErrVersionConflict) {
				m.log.DebugContext(ctx, "version conflict, retrying",
					logger.Event(event.Name()), logger.Version(current.Version))
				return retry.RetryableError(err)
			}
			return err
		}

		written = next
		written.Version = current.Version + 1
		return nil
	})
	if err != nil {
		return Subscription{}, err
	}
	return written, nil
}

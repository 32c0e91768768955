package paywall

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/creatorkit/pkg/logger"
)

// EventType is the normalized billing event type. Providers map their own
// event names onto these.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionUpdated   EventType = "subscription_updated"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventSubscriptionResumed   EventType = "subscription_resumed"
	EventSubscriptionPaused    EventType = "subscription_paused"

	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
)

// WebhookEvent is a verified, normalized billing notification.
type WebhookEvent struct {
	ID            string // provider event ID, used for de-duplication
	Type          EventType
	ProviderEvent string     // original provider event name
	PriceID       string     // provider price the event refers to
	Status        string     // provider subscription status
	PeriodEnd     *time.Time // end of the paid period, when the provider reports it
}

// ApplyEvent reconciles the stored record with a billing event.
//
// Activation events (created, updated, resumed, payment succeeded) write an
// active record for the tier matching the event's price ID, unless the event
// carries a lapsed subscription status. Lapsed statuses, pause, cancellation
// and payment failure mark the record inactive. Events whose ID was already
// applied, or is being applied, are ignored.
func (m *Manager) ApplyEvent(ctx context.Context, ev WebhookEvent) error {
	if ev.ID != "" {
		if found, _ := m.seen.ContainsOrAdd(ev.ID, struct{}{}); found {
			m.log.DebugContext(ctx, "duplicate billing event skipped",
				logger.EventType(string(ev.Type)), logger.EventID(ev.ID))
			return nil
		}
	}

	if err := m.applyEvent(ctx, ev); err != nil {
		if ev.ID != "" {
			m.seen.Remove(ev.ID)
		}
		m.log.WarnContext(ctx, "billing event not applied",
			logger.EventType(string(ev.Type)), logger.EventID(ev.ID), logger.Error(err))
		return err
	}
	return nil
}

// lapsedStatuses are provider subscription statuses that end paid access
// whatever the event type says.
var lapsedStatuses = map[string]bool{
	"paused":   true,
	"canceled": true,
	"past_due": true,
}

func (m *Manager) applyEvent(ctx context.Context, ev WebhookEvent) error {
	switch ev.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionResumed, EventPaymentSucceeded:
		if lapsedStatuses[ev.Status] {
			_, err := m.deactivate(ctx, "subscription deactivated by billing event")
			return err
		}
		tier, err := m.catalog.TierForPriceID(ev.PriceID)
		if err != nil {
			return err
		}
		sub, err := m.transition(ctx, eventActivate(tier), func(Subscription) Subscription {
			next := activeSubscription(tier, m.now())
			if ev.PeriodEnd != nil {
				end := ev.PeriodEnd.UTC()
				next.ExpiresAt = &end
			}
			return next
		})
		if err != nil {
			return err
		}
		m.log.InfoContext(ctx, "subscription activated by billing event",
			logger.EventType(string(ev.Type)), logger.Tier(string(tier)), logger.Version(sub.Version))
		return nil

	case EventSubscriptionCancelled, EventSubscriptionPaused, EventPaymentFailed:
		_, err := m.deactivate(ctx, "subscription deactivated by billing event")
		return err

	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Type)
	}
}

package paywall

import (
	"context"

	"github.com/dmitrymomot/creatorkit/pkg/async"
)

// Service is the single entry point a host application wires up: access
// checks, entitlements and lifecycle transitions over one Store.
type Service interface {
	// Access
	CheckAccess(ctx context.Context, tier Tier) AccessDecision
	CheckGate(ctx context.Context, gate ContentGate) (AccessDecision, error)
	HasFeature(ctx context.Context, f Feature) bool
	Features(ctx context.Context) []Feature

	// Record
	Subscription(ctx context.Context) Subscription
	Catalog() *Catalog

	// Lifecycle
	Upgrade(ctx context.Context, tier Tier) (Subscription, error)
	UpgradeAsync(ctx context.Context, tier Tier) *async.Future[Subscription]
	Cancel(ctx context.Context) (Subscription, error)
	CancelAsync(ctx context.Context) *async.Future[Subscription]
	ResetToDefault(ctx context.Context) (Subscription, error)
	AvailableActions(ctx context.Context) []string

	// Billing events
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	ApplyEvent(ctx context.Context, ev WebhookEvent) error
}

// WebhookParser is implemented by providers that deliver signed billing notifications.
type WebhookParser interface {
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

type service struct {
	*Evaluator
	*Entitlements
	*Manager

	store   Store
	catalog *Catalog
}

// NewService composes an Evaluator, Entitlements and Manager sharing store,
// provider and options. Panics if store or provider is nil.
func NewService(store Store, provider BillingProvider, opts ...Option) Service {
	if store == nil {
		panic("paywall: Store is required")
	}
	if provider == nil {
		panic("paywall: BillingProvider is required")
	}
	o := newOptions(opts...)
	return &service{
		Evaluator:    NewEvaluator(store, opts...),
		Entitlements: NewEntitlements(store, opts...),
		Manager:      NewManager(store, provider, opts...),
		store:        store,
		catalog:      o.catalog,
	}
}

func (s *service) Subscription(ctx context.Context) Subscription {
	return s.store.Read(ctx)
}

func (s *service) Catalog() *Catalog {
	return s.catalog
}

// HandleWebhook verifies a provider notification and applies it.
func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	parser, ok := s.provider.(WebhookParser)
	if !ok {
		return ErrWebhooksNotSupported
	}
	ev, err := parser.ParseWebhook(ctx, payload, signature)
	if err != nil {
		return err
	}
	return s.ApplyEvent(ctx, *ev)
}

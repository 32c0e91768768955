package paywall

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleSignatureHeader carries the webhook signature Paddle sends.
const PaddleSignatureHeader = "Paddle-Signature"

// PaddleConfig holds configuration for the Paddle billing provider.
type PaddleConfig struct {
	APIKey        string `env:"PADDLE_API_KEY"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"sandbox"`
	SuccessURL    string `env:"PADDLE_SUCCESS_URL"`
}

// Enabled reports whether Paddle credentials are configured.
func (c PaddleConfig) Enabled() bool { return c.APIKey != "" }

// PaddleProvider charges through Paddle transactions. A charge creates a
// transaction for the tier's catalog price and returns its hosted checkout URL;
// the tier is activated when Paddle reports the completed transaction.
type PaddleProvider struct {
	transactions *paddle.TransactionsClient
	verifier     *paddle.WebhookVerifier
	config       PaddleConfig
}

// NewPaddleProvider creates a Paddle billing provider.
func NewPaddleProvider(config PaddleConfig) (*PaddleProvider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	var (
		client *paddle.SDK
		err    error
	)
	switch strings.ToLower(config.Environment) {
	case "sandbox", "":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProviderEnvironment, config.Environment)
	}
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}

	return &PaddleProvider{
		transactions: client.TransactionsClient,
		verifier:     paddle.NewWebhookVerifier(config.WebhookSecret),
		config:       config,
	}, nil
}

// Charge creates a Paddle transaction for the requested tier.
func (p *PaddleProvider) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	if req.Price.PriceID == "" {
		return nil, ErrMissingPriceID
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  req.Price.PriceID,
		Quantity: 1,
	})
	txReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"tier": string(req.Tier),
		},
	}
	if p.config.SuccessURL != "" {
		txReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(p.config.SuccessURL),
		}
	}

	tx, err := p.transactions.CreateTransaction(ctx, txReq)
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}
	if tx.Checkout == nil || tx.Checkout.URL == nil || *tx.Checkout.URL == "" {
		return nil, ErrNoCheckoutURL
	}

	return &Receipt{
		ID:          tx.ID,
		Tier:        req.Tier,
		Price:       req.Price,
		CheckoutURL: *tx.Checkout.URL,
		ChargedAt:   time.Now().UTC(),
	}, nil
}

// ParseWebhook verifies the signature and normalizes a Paddle notification.
func (p *PaddleProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for verification: %w", err)
	}
	req.Header.Set(PaddleSignatureHeader, signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrWebhookVerificationFailed, err)
	}
	if !valid {
		return nil, ErrWebhookVerificationFailed
	}
	return decodePaddleEvent(payload)
}

type paddleEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Data      struct {
		Status string `json:"status"`
		Items  []struct {
			PriceID string `json:"price_id"`
			Price   struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"items"`
		BillingPeriod *struct {
			EndsAt time.Time `json:"ends_at"`
		} `json:"current_billing_period"`
	} `json:"data"`
}

func decodePaddleEvent(payload []byte) (*WebhookEvent, error) {
	var pe paddleEvent
	if err := json.Unmarshal(payload, &pe); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	ev := &WebhookEvent{
		ID:            pe.EventID,
		Type:          mapPaddleEventType(pe.EventType),
		ProviderEvent: pe.EventType,
		Status:        pe.Data.Status,
	}
	// subscription events nest the price, transaction events reference it by ID
	if len(pe.Data.Items) > 0 {
		item := pe.Data.Items[0]
		ev.PriceID = item.Price.ID
		if ev.PriceID == "" {
			ev.PriceID = item.PriceID
		}
	}
	if pe.Data.BillingPeriod != nil && !pe.Data.BillingPeriod.EndsAt.IsZero() {
		end := pe.Data.BillingPeriod.EndsAt.UTC()
		ev.PeriodEnd = &end
	}
	return ev, nil
}

func mapPaddleEventType(name string) EventType {
	switch name {
	case "transaction.completed", "subscription.created":
		return EventSubscriptionCreated
	case "subscription.updated":
		return EventSubscriptionUpdated
	case "subscription.canceled":
		return EventSubscriptionCancelled
	case "subscription.resumed":
		return EventSubscriptionResumed
	case "subscription.paused":
		return EventSubscriptionPaused
	case "transaction.paid":
		return EventPaymentSucceeded
	case "transaction.payment_failed", "subscription.past_due":
		return EventPaymentFailed
	default:
		return EventType(name)
	}
}

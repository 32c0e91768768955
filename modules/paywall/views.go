package paywall

import (
	"time"

	"golang.org/x/text/language"

	engine "github.com/dmitrymomot/creatorkit/pkg/paywall"
)

// SubscriptionView is the JSON form of the stored record plus the lifecycle
// actions the viewer can take next.
type SubscriptionView struct {
	Tier      engine.Tier      `json:"tier"`
	IsActive  bool             `json:"isActive"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty"`
	Features  []engine.Feature `json:"features"`
	Version   uint64           `json:"version"`
	State     string           `json:"state"`
	Actions   []string         `json:"actions,omitempty"`
}

func subscriptionView(sub engine.Subscription, actions []string) SubscriptionView {
	return SubscriptionView{
		Tier:      sub.Tier,
		IsActive:  sub.IsActive,
		ExpiresAt: sub.ExpiresAt,
		Features:  sub.Features,
		Version:   sub.Version,
		State:     sub.State().Name(),
		Actions:   actions,
	}
}

// PriceView is one paid tier in the pricing table.
type PriceView struct {
	Tier     engine.Tier `json:"tier"`
	Amount   int64       `json:"amount"`
	Currency string      `json:"currency"`
	Display  string      `json:"display"`
}

func pricingView(catalog *engine.Catalog, tag language.Tag) []PriceView {
	var out []PriceView
	for _, tier := range engine.Tiers() {
		p, ok := catalog.Price(tier)
		if !ok {
			continue
		}
		out = append(out, PriceView{
			Tier:     tier,
			Amount:   p.Amount,
			Currency: p.Currency,
			Display:  p.Format(tag),
		})
	}
	return out
}

// FeatureView reports whether one feature is enabled.
type FeatureView struct {
	Feature engine.Feature `json:"feature"`
	Enabled bool           `json:"enabled"`
}

// CheckoutView is returned with 202 Accepted when payment continues on a
// hosted checkout page.
type CheckoutView struct {
	CheckoutURL string `json:"checkoutUrl"`
	ReceiptID   string `json:"receiptId,omitempty"`
}

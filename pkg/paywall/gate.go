package paywall

import "fmt"

// ContentGate is the access metadata attached to a piece of content.
type ContentGate struct {
	RequiredTier Tier  `json:"requiredTier"`
	PriceCents   int64 `json:"priceCents"`
	Locked       bool  `json:"locked"`
}

// IsPremium reports whether the gate restricts access at all.
// Any one of locked, a paid tier or a non-zero price is sufficient.
func (g ContentGate) IsPremium() bool {
	return g.Locked || g.tier() != TierFree || g.PriceCents > 0
}

// EffectiveTier returns the tier a viewer needs to pass the gate.
// Locked or priced content without an explicit paid tier requires the cheapest paid tier.
func (g ContentGate) EffectiveTier() Tier {
	if !g.IsPremium() {
		return TierFree
	}
	if t := g.tier(); t.IsPaid() {
		return t
	}
	return lowestPaidTier()
}

// Validate rejects unknown tiers and negative prices.
func (g ContentGate) Validate() error {
	if !g.tier().Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidGate, ErrInvalidTier, string(g.RequiredTier))
	}
	if g.PriceCents < 0 {
		return fmt.Errorf("%w: negative price %d", ErrInvalidGate, g.PriceCents)
	}
	return nil
}

// tier treats an omitted tier as free.
func (g ContentGate) tier() Tier {
	if g.RequiredTier == "" {
		return TierFree
	}
	return g.RequiredTier
}

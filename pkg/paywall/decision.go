package paywall

import (
	"fmt"
	"time"
)

const (
	// ReasonInvalid is returned when the stored subscription is inactive or past its expiration.
	ReasonInvalid = "subscription inactive or expired"
)

// ReasonRequiresTier returns the denial reason for an insufficient tier.
func ReasonRequiresTier(t Tier) string {
	return fmt.Sprintf("requires %s subscription", t)
}

// AccessDecision is the outcome of an access check. It reflects a single
// moment in time and must not be cached beyond one render or check.
type AccessDecision struct {
	CanView         bool   `json:"canView"`
	RequiresUpgrade bool   `json:"requiresUpgrade"`
	RequiredTier    Tier   `json:"requiredTier"`
	Reason          string `json:"reason,omitempty"` // set only when denied
}

// Evaluate decides whether sub grants access to content requiring the given tier at now.
// Free content is never gated. Panics when required is not a defined tier.
func Evaluate(required Tier, sub Subscription, now time.Time) AccessDecision {
	if required.Level() == TierFree.Level() {
		return AccessDecision{CanView: true, RequiredTier: required}
	}

	valid := sub.IsValidAt(now)
	sufficient := sub.Tier.Valid() && sub.Tier.Includes(required)
	canView := valid && sufficient

	d := AccessDecision{
		CanView:         canView,
		RequiresUpgrade: !canView,
		RequiredTier:    required,
	}
	switch {
	case !valid:
		d.Reason = ReasonInvalid
	case !sufficient:
		d.Reason = ReasonRequiresTier(required)
	}
	return d
}

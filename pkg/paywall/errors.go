package paywall

import "errors"

var (
	ErrInvalidTier         = errors.New("invalid subscription tier")
	ErrInvalidSubscription = errors.New("invalid subscription record")
	ErrInvalidGate         = errors.New("invalid content gate")
	ErrCorruptRecord       = errors.New("corrupt subscription record")
	ErrBackendUnavailable  = errors.New("subscription backend unavailable")

	ErrVersionConflict   = errors.New("subscription record was modified concurrently")
	ErrNotUpgradable     = errors.New("subscription tier cannot be purchased")
	ErrInvalidTransition = errors.New("invalid subscription lifecycle transition")

	// ErrUpgradeFailed carries a message suitable for direct display.
	ErrUpgradeFailed   = errors.New("upgrade failed, please try again")
	ErrProviderError   = errors.New("billing provider error")
	ErrCheckoutPending = errors.New("payment requires hosted checkout")

	ErrUnknownEvent         = errors.New("unknown billing event")
	ErrUnknownPriceID       = errors.New("price ID does not match any tier")
	ErrWebhooksNotSupported = errors.New("billing provider does not deliver webhooks")
	ErrInvalidCatalog       = errors.New("invalid pricing catalog")
	ErrFailedToLoadFile     = errors.New("failed to load catalog file")

	// Provider-specific errors
	ErrMissingAPIKey              = errors.New("billing provider API key is required")
	ErrMissingWebhookSecret       = errors.New("billing provider webhook secret is required")
	ErrInvalidProviderEnvironment = errors.New("invalid billing provider environment")
	ErrWebhookVerificationFailed  = errors.New("webhook signature verification failed")
	ErrMissingPriceID             = errors.New("price ID is required")
	ErrNoCheckoutURL              = errors.New("no checkout URL returned from provider")
)

// CheckoutRequiredError is returned by Manager.Upgrade when the provider
// accepted the charge request but the buyer must finish payment on a hosted
// checkout page. The tier is activated later by a billing event.
type CheckoutRequiredError struct {
	URL       string
	ReceiptID string
}

func (e *CheckoutRequiredError) Error() string {
	return ErrCheckoutPending.Error() + ": " + e.URL
}

func (e *CheckoutRequiredError) Unwrap() error { return ErrCheckoutPending }

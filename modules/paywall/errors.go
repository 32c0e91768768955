package paywall

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/creatorkit/handler"
	engine "github.com/dmitrymomot/creatorkit/pkg/paywall"
)

var (
	errUnauthorizedWebhook = handler.NewHTTPError(http.StatusUnauthorized, "invalid_signature")
	errTooManyUpgrades     = errors.New("too many upgrade attempts, please wait before retrying")
	errLimiterUnavailable  = errors.New("upgrades are temporarily unavailable")
)

// statusFor maps engine errors to HTTP errors. Unknown errors pass through and
// are reported as 500 without their message.
func statusFor(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, engine.ErrUpgradeFailed):
		// provider details stay in the logs
		return handler.WithStatus(handler.ErrPaymentRequired, engine.ErrUpgradeFailed)
	case errors.Is(err, engine.ErrInvalidTier),
		errors.Is(err, engine.ErrInvalidGate),
		errors.Is(err, engine.ErrNotUpgradable):
		return handler.WithStatus(handler.ErrBadRequest, err)
	case errors.Is(err, engine.ErrVersionConflict),
		errors.Is(err, engine.ErrInvalidTransition):
		return handler.WithStatus(handler.ErrConflict, err)
	case errors.Is(err, engine.ErrWebhookVerificationFailed):
		return handler.WithStatus(errUnauthorizedWebhook, engine.ErrWebhookVerificationFailed)
	case errors.Is(err, engine.ErrWebhooksNotSupported):
		return handler.WithStatus(handler.ErrNotImplemented, err)
	case errors.Is(err, engine.ErrUnknownPriceID):
		return handler.WithStatus(handler.ErrUnprocessableEntity, err)
	default:
		return err
	}
}

package paywall

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/creatorkit/handler"
	"github.com/dmitrymomot/creatorkit/pkg/binder"
	"github.com/dmitrymomot/creatorkit/pkg/logger"
	engine "github.com/dmitrymomot/creatorkit/pkg/paywall"
	"github.com/dmitrymomot/creatorkit/pkg/ratelimiter"
	"github.com/dmitrymomot/creatorkit/pkg/requestid"
)

// maxWebhookSize bounds provider notification bodies.
const maxWebhookSize = 1 << 20

// Module exposes a paywall Service over JSON HTTP.
type Module struct {
	svc     engine.Service
	log     *slog.Logger
	lang    language.Tag
	charges *ratelimiter.Bucket
	proxied bool
}

// Option configures a Module.
type Option func(*Module)

// WithLogger sets the logger used for request errors.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// WithLanguage sets the fallback language for price display when the request
// has no usable Accept-Language header.
func WithLanguage(tag language.Tag) Option {
	return func(m *Module) { m.lang = tag }
}

// WithChargeLimiter throttles POST /upgrade/{tier} per client IP so a caller
// cannot hammer the billing provider.
func WithChargeLimiter(b *ratelimiter.Bucket) Option {
	return func(m *Module) { m.charges = b }
}

// WithTrustedProxy keys the charge limiter on forwarding headers such as
// X-Forwarded-For instead of the connection address. Enable it only behind a
// reverse proxy that overwrites those headers.
func WithTrustedProxy(trusted bool) Option {
	return func(m *Module) { m.proxied = trusted }
}

// New creates the HTTP module. Panics if svc is nil.
func New(svc engine.Service, opts ...Option) *Module {
	if svc == nil {
		panic("paywall: Service is required")
	}
	m := &Module{
		svc:  svc,
		log:  slog.Default(),
		lang: language.English,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type tierRequest struct {
	Tier string `path:"tier"`
}

type featureRequest struct {
	Feature string `path:"feature"`
}

// Handle returns the module router:
//
//	GET  /subscription       current record and available actions
//	GET  /access/{tier}      access decision for content requiring tier
//	POST /gate               access decision for a ContentGate body
//	GET  /features           enabled features
//	GET  /features/{feature} whether one feature is enabled
//	GET  /pricing            paid tier prices
//	POST /upgrade/{tier}     charge and activate tier
//	POST /cancel             deactivate the subscription
//	POST /reset              restore the default free record
//	POST /webhook            billing provider notifications
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.Recoverer)

	onError := handler.NewErrorHandler(m.log)
	opts := func(binders ...handler.Bind) []handler.Option {
		return []handler.Option{handler.WithBinders(binders...), handler.WithErrorHandler(onError)}
	}
	path := binder.Path(chi.URLParam)

	r.Get("/subscription", handler.Wrap(m.subscription, opts()...))
	r.Get("/access/{tier}", handler.Wrap(m.access, opts(path)...))
	r.Post("/gate", handler.Wrap(m.gate, opts(binder.JSON())...))
	r.Get("/features", handler.Wrap(m.features, opts()...))
	r.Get("/features/{feature}", handler.Wrap(m.feature, opts(path)...))
	r.Get("/pricing", handler.Wrap(m.pricing, opts()...))
	r.With(m.limitCharges).Post("/upgrade/{tier}", handler.Wrap(m.upgrade, opts(path)...))
	r.Post("/cancel", handler.Wrap(m.cancel, opts()...))
	r.Post("/reset", handler.Wrap(m.reset, opts()...))
	r.Post("/webhook", handler.Wrap(m.webhook, opts()...))

	return r
}

func (m *Module) subscription(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(subscriptionView(m.svc.Subscription(ctx), m.svc.AvailableActions(ctx)))
}

func (m *Module) access(ctx handler.Context, req tierRequest) handler.Response {
	tier, err := engine.ParseTier(req.Tier)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(m.svc.CheckAccess(ctx, tier))
}

func (m *Module) gate(ctx handler.Context, gate engine.ContentGate) handler.Response {
	d, err := m.svc.CheckGate(ctx, gate)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(d)
}

func (m *Module) features(ctx handler.Context, _ struct{}) handler.Response {
	features := m.svc.Features(ctx)
	if features == nil {
		features = []engine.Feature{}
	}
	return handler.JSON(features)
}

func (m *Module) feature(ctx handler.Context, req featureRequest) handler.Response {
	f := engine.Feature(req.Feature)
	return handler.JSON(FeatureView{Feature: f, Enabled: m.svc.HasFeature(ctx, f)})
}

func (m *Module) pricing(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(pricingView(m.svc.Catalog(), m.languageOf(ctx.Request())))
}

func (m *Module) upgrade(ctx handler.Context, req tierRequest) handler.Response {
	tier, err := engine.ParseTier(req.Tier)
	if err != nil {
		return fail(err)
	}

	sub, err := m.svc.Upgrade(ctx, tier)
	var checkout *engine.CheckoutRequiredError
	switch {
	case errors.As(err, &checkout):
		return handler.JSON(CheckoutView{CheckoutURL: checkout.URL, ReceiptID: checkout.ReceiptID},
			handler.WithJSONStatus(http.StatusAccepted))
	case err != nil:
		return fail(err)
	}
	return handler.JSON(subscriptionView(sub, m.svc.AvailableActions(ctx)))
}

func (m *Module) cancel(ctx handler.Context, _ struct{}) handler.Response {
	sub, err := m.svc.Cancel(ctx)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(subscriptionView(sub, m.svc.AvailableActions(ctx)))
}

func (m *Module) reset(ctx handler.Context, _ struct{}) handler.Response {
	sub, err := m.svc.ResetToDefault(ctx)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(subscriptionView(sub, m.svc.AvailableActions(ctx)))
}

func (m *Module) webhook(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookSize+1))
	if err != nil {
		return fail(fmt.Errorf("failed to read webhook body: %w", err))
	}
	if len(payload) > maxWebhookSize {
		return fail(handler.WithStatus(handler.ErrBadRequest, errors.New("webhook body too large")))
	}

	err = m.svc.HandleWebhook(ctx, payload, r.Header.Get(engine.PaddleSignatureHeader))
	if errors.Is(err, engine.ErrUnknownEvent) {
		// acknowledged so the provider stops redelivering it
		return handler.JSON(map[string]bool{"ignored": true})
	}
	if err != nil {
		return fail(err)
	}
	return handler.Empty()
}

func (m *Module) limitCharges(next http.Handler) http.Handler {
	if m.charges == nil {
		return next
	}
	key := ratelimiter.ByRemoteAddr
	if m.proxied {
		key = ratelimiter.ByClientIP
	}
	return ratelimiter.Middleware(m.charges, key,
		ratelimiter.WithDenied(func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
			m.log.WarnContext(r.Context(), "upgrade attempts throttled")
			_ = handler.JSONError(handler.WithStatus(handler.ErrTooManyRequests, errTooManyUpgrades)).Render(w, r)
		}),
		ratelimiter.WithStoreError(func(w http.ResponseWriter, r *http.Request, err error) {
			m.log.ErrorContext(r.Context(), "upgrade limiter unavailable", logger.Error(err))
			_ = handler.JSONError(handler.WithStatus(handler.ErrServiceUnavailable, errLimiterUnavailable)).Render(w, r)
		}),
	)(next)
}

func (m *Module) languageOf(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return m.lang
	}
	return tags[0]
}

// errorResponse hands err to the route's ErrorHandler.
type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

func fail(err error) handler.Response {
	return errorResponse{err: statusFor(err)}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/creatorkit/pkg/binder"
)

// HandlerFunc handles a request already bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from r. Returning binder.ErrBinderNotApplicable skips it.
type Bind func(r *http.Request, v any) error

// ErrorHandler reports binding and rendering failures.
type ErrorHandler func(ctx Context, err error)

type options struct {
	binders []Bind
	onError ErrorHandler
}

// Option configures Wrap.
type Option func(*options)

// WithBinders appends binders; they run in order against the same value.
func WithBinders(binders ...Bind) Option {
	return func(o *options) { o.binders = append(o.binders, binders...) }
}

// WithErrorHandler replaces the plain-text error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.onError = h
		}
	}
}

func plainError(ctx Context, err error) {
	p := classify(err)
	http.Error(ctx.ResponseWriter(), p.Message, p.Status)
}

// Wrap adapts h to net/http. Binding failures reach the error handler as
// 400 Bad Request.
//
//	r.Post("/upgrade/{tier}", handler.Wrap(upgrade,
//		handler.WithBinders(binder.Path(chi.URLParam)),
//		handler.WithErrorHandler(handler.NewErrorHandler(log)),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...Option) http.HandlerFunc {
	o := options{onError: plainError}
	for _, opt := range opts {
		opt(&o)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range o.binders {
			err := bind(r, &req)
			if err == nil || errors.Is(err, binder.ErrBinderNotApplicable) {
				continue
			}
			o.onError(ctx, WithStatus(ErrBadRequest, err))
			return
		}

		resp := h(ctx, req)
		if resp == nil {
			o.onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			o.onError(ctx, err)
		}
	}
}

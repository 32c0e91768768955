package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/creatorkit/pkg/logger"
	"github.com/dmitrymomot/creatorkit/pkg/requestid"
)

const internalMessage = "An error occurred processing your request"

// problem is an error reduced to what a client may see.
type problem struct {
	Status  int
	Code    string
	Message string
}

// classify maps err onto a status. Only StatusError causes are shown
// verbatim; anything unrecognised is a 500 with a generic message.
func classify(err error) problem {
	var se *StatusError
	if errors.As(err, &se) {
		return problem{Status: se.Code, Code: se.Key, Message: se.Err.Error()}
	}
	var he HTTPError
	if errors.As(err, &he) {
		return problem{Status: he.Code, Code: he.Key, Message: http.StatusText(he.Code)}
	}
	return problem{
		Status:  ErrInternalServerError.Code,
		Code:    ErrInternalServerError.Key,
		Message: internalMessage,
	}
}

func (p problem) level() slog.Level {
	if p.Status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler logs err with the request ID, at warn for client errors and
// error otherwise, then writes the JSON error envelope.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("http"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		p := classify(err)
		attrs := []slog.Attr{
			logger.RequestID(requestid.FromContext(r.Context())),
			slog.Int("status_code", p.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		}

		log.LogAttrs(r.Context(), p.level(), "request failed", append(attrs, logger.Error(err))...)
		if rerr := p.response().Render(ctx.ResponseWriter(), r); rerr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "error response not written", append(attrs, logger.Error(rerr))...)
		}
	}
}

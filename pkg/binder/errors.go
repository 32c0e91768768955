package binder

import "errors"

var (
	ErrMissingContentType   = errors.New("binder: missing content type")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrFailedToParseJSON    = errors.New("binder: malformed JSON body")
	ErrFailedToParsePath    = errors.New("binder: malformed path parameter")

	// ErrBinderNotApplicable tells handler.Wrap to skip the binder.
	ErrBinderNotApplicable = errors.New("binder: not applicable")
)

// Package handler provides typed HTTP handlers: a request is bound into a
// struct, the handler returns a Response, and errors go through one
// ErrorHandler.
//
//	type TierRequest struct {
//		Tier string `path:"tier"`
//	}
//
//	access := func(ctx handler.Context, req TierRequest) handler.Response {
//		tier, err := paywall.ParseTier(req.Tier)
//		if err != nil {
//			return handler.JSONError(handler.WithStatus(handler.ErrBadRequest, err))
//		}
//		return handler.JSON(svc.CheckAccess(ctx, tier))
//	}
//
//	r.Get("/access/{tier}", handler.Wrap(access,
//		handler.WithBinders(binder.Path(chi.URLParam)),
//		handler.WithErrorHandler(handler.NewErrorHandler(log)),
//	))
//
// Binding failures are reported as 400 Bad Request. HTTPError and StatusError
// carry a status code through the error chain; any other error is a 500 whose
// message is not shown to the client.
package handler

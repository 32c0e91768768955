// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reuses a client-supplied X-Request-ID header when it is well
// formed and otherwise generates a UUIDv7. The ID is echoed in the response,
// stored in the request context (readable with FromContext or chi's
// middleware.GetReqID) and added to log records through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid

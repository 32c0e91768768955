// Package paywall mounts the paywall engine as a JSON HTTP module.
//
//	svc := paywall.NewService(store, provider, opts...)
//	r := chi.NewRouter()
//	r.Mount("/paywall", paywallmod.New(svc, paywallmod.WithLogger(log)).Handle())
//
// Successful responses use the handler package envelope {"data": ...}. Errors
// are {"error": {"code", "message"}} with 400 for invalid tiers and gates, 402
// when a charge fails, 409 for concurrent or invalid lifecycle transitions and
// 500 otherwise. An upgrade that needs a hosted checkout answers 202 with the
// checkout URL; the tier is activated when the provider's webhook arrives.
//
// Access decisions are advisory. The server delivering protected content must
// check access itself.
package paywall

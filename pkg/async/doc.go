// Package async runs a function in the background and hands back a typed Future.
//
//	fut := async.Async(ctx, paywall.TierPremium, manager.Upgrade)
//	// ... keep serving
//	sub, err := fut.AwaitContext(r.Context())
//
// AwaitContext lets a caller stop waiting without abandoning the work: the
// function keeps running and its result is kept in the Future. WaitAll collects
// several futures of the same type.
package async

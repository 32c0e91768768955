// Package cache provides a generic, concurrency-safe LRU.
//
// The paywall engine uses it to remember recently applied billing event IDs so
// a redelivered webhook is applied once:
//
//	seen := cache.NewLRU[string, struct{}](1024)
//	if seen.Contains(ev.ID) {
//		return nil
//	}
//	// apply ...
//	seen.Add(ev.ID, struct{}{})
//
// All operations are O(1).
package cache

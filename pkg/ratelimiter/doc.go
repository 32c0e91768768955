// Package ratelimiter implements token bucket rate limiting.
//
// A Bucket allows bursts up to Config.Capacity and refills RefillRate tokens
// every RefillInterval. State lives in a Store; MemoryStore keeps it in
// process memory and sweeps idle buckets.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ByClientIP)).Post("/upgrade/{tier}", h)
package ratelimiter

// Package redis connects to Redis and stores the subscription record in it.
//
//   - Connect parses a redis:// URL and pings with retries until the server is ready.
//   - KV implements the paywall Backend contract with WATCH/MULTI
//     compare-and-swap, so two sessions writing the same record cannot both win.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := paywall.NewStore(redis.NewKV(client))
//
// Configuration is read from REDIS_URL, REDIS_RETRY_ATTEMPTS,
// REDIS_RETRY_INTERVAL and REDIS_CONNECT_TIMEOUT.
package redis

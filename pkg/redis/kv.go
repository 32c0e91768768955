package redis

import (
	"bytes"
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KV stores byte values in Redis with optimistic compare-and-swap.
type KV struct {
	client redis.UniversalClient
}

// NewKV wraps a connected client. Panics if client is nil.
func NewKV(client redis.UniversalClient) *KV {
	if client == nil {
		panic("redis: client is required")
	}
	return &KV{client: client}
}

// Get returns nil, nil when key does not exist.
func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// CompareAndSwap sets key to next if its current value equals old, or if key
// is absent and old is nil. The check and the write run in one WATCH/MULTI
// transaction, so a concurrent writer makes it report false.
func (s *KV) CompareAndSwap(ctx context.Context, key string, old, next []byte) (bool, error) {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if old != nil {
				return errValueChanged
			}
		case err != nil:
			return err
		case old == nil || !bytes.Equal(cur, old):
			return errValueChanged
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errValueChanged), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, err
	}
}

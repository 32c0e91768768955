package paywall

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/creatorkit/pkg/logger"
)

// DefaultStoreKey is the key under which the record is kept when none is configured.
const DefaultStoreKey = "paywall:subscription"

// Store holds the single current Subscription record.
type Store interface {
	// Read returns the current record. It never fails: a missing, corrupt or
	// unreachable record yields DefaultSubscription.
	Read(ctx context.Context) Subscription

	// Write replaces the record if sub.Version matches the stored version.
	// Returns ErrVersionConflict on mismatch and ErrInvalidSubscription for
	// records that break the tier/feature invariants. An unreachable backend
	// is not an error; the write is skipped.
	Write(ctx context.Context, sub Subscription) error
}

// Backend is a durable byte-level key-value holder.
type Backend interface {
	// Get returns nil, nil when key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// CompareAndSwap stores next under key only if the current value equals old.
	// A nil old means the key must not exist yet.
	CompareAndSwap(ctx context.Context, key string, old, next []byte) (bool, error)
}

// Probe returns a readiness check that succeeds when the record under key can
// be fetched from b. A nil backend is always ready.
func Probe(b Backend, key string) func(context.Context) error {
	return func(ctx context.Context) error {
		if b == nil {
			return nil
		}
		if _, err := b.Get(ctx, key); err != nil {
			return errors.Join(ErrBackendUnavailable, err)
		}
		return nil
	}
}

// StoreOption configures a Store.
type StoreOption func(*kvStore)

// WithStoreKey sets the backend key holding the record. Empty keys are ignored.
func WithStoreKey(key string) StoreOption {
	return func(s *kvStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithStoreLogger sets the logger used for recovery warnings.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *kvStore) {
		if l != nil {
			s.log = l
		}
	}
}

type kvStore struct {
	backend Backend
	key     string
	log     *slog.Logger

	// serializes read-compare-swap within this process; backends guard across processes
	mu sync.Mutex
}

// NewStore returns a Store persisting the record in backend.
// A nil backend produces an ephemeral store: reads return the default record and
// writes are skipped, matching a context with no durable storage.
func NewStore(backend Backend, opts ...StoreOption) Store {
	s := &kvStore{
		backend: backend,
		key:     DefaultStoreKey,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *kvStore) Read(ctx context.Context) Subscription {
	sub, _, _ := s.load(ctx)
	return sub
}

func (s *kvStore) Write(ctx context.Context, sub Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	if s.backend == nil {
		s.log.DebugContext(ctx, "no durable backend, skipping write",
			logger.StoreKey(s.key), logger.Tier(string(sub.Tier)))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, raw, ok := s.load(ctx)
	if !ok {
		return nil
	}
	if sub.Version != current.Version {
		return ErrVersionConflict
	}

	next := sub.Clone()
	next.Version = current.Version + 1
	data, err := EncodeSubscription(next)
	if err != nil {
		return errors.Join(ErrInvalidSubscription, err)
	}

	swapped, err := s.backend.CompareAndSwap(ctx, s.key, raw, data)
	if err != nil {
		s.log.WarnContext(ctx, "subscription backend unavailable, write skipped",
			logger.StoreKey(s.key), logger.Error(err))
		return nil
	}
	if !swapped {
		return ErrVersionConflict
	}
	return nil
}

// load returns the decoded record, the raw bytes it came from and whether the
// backend was reachable. Corrupt records decode to the default with version 0,
// keeping raw so the next write can replace them.
func (s *kvStore) load(ctx context.Context) (Subscription, []byte, bool) {
	if s.backend == nil {
		return DefaultSubscription(), nil, false
	}

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.log.WarnContext(ctx, "subscription backend unavailable, using default",
			logger.StoreKey(s.key), logger.Error(err))
		return DefaultSubscription(), nil, false
	}
	if raw == nil {
		return DefaultSubscription(), nil, true
	}

	sub, err := DecodeSubscription(raw)
	if err != nil {
		s.log.WarnContext(ctx, "corrupt subscription record, using default",
			logger.StoreKey(s.key), logger.Error(err))
		return DefaultSubscription(), raw, true
	}
	return sub, raw, true
}

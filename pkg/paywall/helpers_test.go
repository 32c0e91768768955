package paywall_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/paywall"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) paywall.Clock {
	return func() time.Time { return t }
}

func newTestStore(t *testing.T) (paywall.Store, *paywall.MemoryBackend) {
	t.Helper()
	backend := paywall.NewMemoryBackend()
	return paywall.NewStore(backend), backend
}

// seed replaces the stored record with sub, whatever version it holds.
func seed(t *testing.T, store paywall.Store, sub paywall.Subscription) {
	t.Helper()
	ctx := context.Background()
	sub.Version = store.Read(ctx).Version
	require.NoError(t, store.Write(ctx, sub))
}

func activeAt(tier paywall.Tier, expires time.Time) paywall.Subscription {
	return paywall.Subscription{
		Tier:      tier,
		IsActive:  true,
		ExpiresAt: &expires,
		Features:  paywall.FeaturesFor(tier),
	}
}

func instantProvider() *paywall.SimulatedProvider {
	return paywall.NewSimulatedProvider(paywall.WithLatency(0))
}

var errBackendDown = errors.New("backend down")

// downBackend fails every call.
type downBackend struct{}

func (downBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errBackendDown
}

func (downBackend) CompareAndSwap(context.Context, string, []byte, []byte) (bool, error) {
	return false, errBackendDown
}

// contendedBackend lets a rival writer win the first n swaps by storing the
// same next value first.
type contendedBackend struct {
	*paywall.MemoryBackend
	conflicts atomic.Int32
}

func newContendedBackend(n int32) *contendedBackend {
	b := &contendedBackend{MemoryBackend: paywall.NewMemoryBackend()}
	b.conflicts.Store(n)
	return b
}

func (b *contendedBackend) CompareAndSwap(ctx context.Context, key string, old, next []byte) (bool, error) {
	if b.conflicts.Add(-1) >= 0 {
		b.Set(key, next)
		return false, nil
	}
	return b.MemoryBackend.CompareAndSwap(ctx, key, old, next)
}

package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()
		f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})
		got, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.True(t, f.IsComplete())
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := async.Async(context.Background(), "x", func(context.Context, string) (string, error) {
			return "", boom
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("skips function on cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called.Store(true)
			return 1, nil
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called.Load())
	})

	t.Run("function sees context cancellation", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		f := async.Async(ctx, 0, func(ctx context.Context, _ int) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), 7, func(_ context.Context, n int) (int, error) {
		<-release
		return n, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.IsComplete())

	close(release)
	<-f.Done()
	got, err := f.AwaitContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("collects results in order", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		double := func(_ context.Context, n int) (int, error) {
			time.Sleep(time.Duration(5-n) * time.Millisecond)
			return n * 2, nil
		}
		got, err := async.WaitAll(
			async.Async(ctx, 1, double),
			async.Async(ctx, 2, double),
			async.Async(ctx, 3, double),
		)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 6}, got)
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		boom := errors.New("boom")
		ok := async.Async(ctx, 1, func(_ context.Context, n int) (int, error) { return n, nil })
		bad := async.Async(ctx, 2, func(context.Context, int) (int, error) { return 0, boom })

		got, err := async.WaitAll(ok, bad)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []int{1, 0}, got)
	})

	t.Run("no futures", func(t *testing.T) {
		t.Parallel()
		got, err := async.WaitAll[int]()
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

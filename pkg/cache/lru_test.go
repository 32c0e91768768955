package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("add and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)

		assert.False(t, c.Add("a", 1))
		assert.False(t, c.Add("b", 2))

		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 2, c.Len())

		_, ok = c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("update keeps single entry", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Add("a", 1)
		assert.False(t, c.Add("a", 10))

		v, _ := c.Get("a")
		assert.Equal(t, 10, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Add("a", 1)
		c.Add("b", 2)
		c.Get("a") // b is now oldest

		assert.True(t, c.Add("c", 3))
		assert.True(t, c.Contains("a"))
		assert.False(t, c.Contains("b"))
		assert.True(t, c.Contains("c"))
	})

	t.Run("contains does not refresh", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, struct{}](2)
		c.Add("a", struct{}{})
		c.Add("b", struct{}{})
		assert.True(t, c.Contains("a"))

		c.Add("c", struct{}{})
		assert.False(t, c.Contains("a"))
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[int, string](2)
		c.Add(1, "one")
		assert.True(t, c.Remove(1))
		assert.False(t, c.Remove(1))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("contains or add", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](1)

		found, evicted := c.ContainsOrAdd("a", 1)
		assert.False(t, found)
		assert.False(t, evicted)

		found, _ = c.ContainsOrAdd("a", 2)
		assert.True(t, found)
		v, _ := c.Get("a")
		assert.Equal(t, 1, v, "existing value is kept")

		found, evicted = c.ContainsOrAdd("b", 3)
		assert.False(t, found)
		assert.True(t, evicted)
	})

	t.Run("invalid capacity", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})
}

func TestLRU_ContainsOrAddSingleWinner(t *testing.T) {
	t.Parallel()
	c := cache.NewLRU[string, struct{}](8)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if found, _ := c.ContainsOrAdd("evt", struct{}{}); !found {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()
	c := cache.NewLRU[string, int](64)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("%d-%d", i, j)
				c.Add(key, j)
				c.Get(key)
				c.Contains(key)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 64, c.Len())
}

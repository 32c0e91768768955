package paywall

import (
	"bytes"
	"context"
	"slices"
	"sync"
)

// MemoryBackend is an in-process Backend. It is safe for concurrent use
// and mainly useful for tests and single-process deployments.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (m *MemoryBackend) CompareAndSwap(_ context.Context, key string, old, next []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, exists := m.data[key]
	if old == nil {
		if exists {
			return false, nil
		}
	} else if !exists || !bytes.Equal(cur, old) {
		return false, nil
	}

	m.data[key] = slices.Clone(next)
	return true, nil
}

// Set overwrites key unconditionally. Intended for seeding fixtures.
func (m *MemoryBackend) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(value)
}

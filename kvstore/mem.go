package kvstore

import (
	"context"
	"slices"
	"sync"
)

// Mem is an in-memory Store, safe for concurrent use. It backs tests and
// single-process deployments that need no durability.
type Mem struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{values: make(map[string][]byte)}
}

func (m *Mem) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// copy both ways so callers cannot alias the stored bytes
	m.values[key] = slices.Clone(value)
	return nil
}

func (m *Mem) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

// Len returns the number of stored keys.
func (m *Mem) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

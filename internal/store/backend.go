package store

import (
	"context"
	"slices"
	"sync"
)

// Backend persists serialized collections by key. Load returns nil data
// and no error when the key has never been saved.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.data[key]), nil
}

func (m *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(data)
	return nil
}

func (m *MemoryBackend) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// DisabledBackend stands in when there is no persistence context: reads
// are empty and writes are dropped.
type DisabledBackend struct{}

func (DisabledBackend) Load(context.Context, string) ([]byte, error) { return nil, nil }

func (DisabledBackend) Save(context.Context, string, []byte) error { return nil }

func (DisabledBackend) Remove(context.Context, string) error { return nil }

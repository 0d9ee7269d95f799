package blobstore

import (
	"context"
	"sync"
)

// Memory is a map-backed Store. It backs the "memory" storage driver and
// doubles as the test double: FailSaves makes every Save return an error so
// tests can observe the engine's best-effort persistence behavior.
type Memory struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	FailSaves error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Load returns the blob for key, or ErrNotFound.
func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Save stores a copy of the blob under key.
func (m *Memory) Save(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves != nil {
		return m.FailSaves
	}
	stored := make([]byte, len(blob))
	copy(stored, blob)
	m.blobs[key] = stored
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Put seeds a blob directly, bypassing FailSaves. Test helper.
func (m *Memory) Put(key string, blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = blob
}

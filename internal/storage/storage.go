// Package storage persists whole-collection snapshots under a fixed key per
// entity kind. Every write replaces the previous snapshot.
package storage

import (
	"context"
	"errors"
	"sync"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore saves and loads serialized collections.
type SnapshotStore interface {
	// Load returns ErrSnapshotNotFound when nothing was saved under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *MemoryStore) Save(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = append([]byte(nil), payload...)
	return nil
}

package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// MockStorage is an in-memory implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID]*state.Snapshot
	bundles   map[string]*content.Bundle
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		snapshots: make(map[uuid.UUID]*state.Snapshot),
		bundles:   make(map[string]*content.Bundle),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddBundle registers a bundle for lookup
func (m *MockStorage) AddBundle(b *content.Bundle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bundles[b.ID] = b
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveSnapshot(ctx context.Context, id uuid.UUID, s *state.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[id] = s.Clone()
	return nil
}

func (m *MockStorage) LoadSnapshot(ctx context.Context, id uuid.UUID) (*state.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snapshots[id]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

func (m *MockStorage) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	return nil
}

func (m *MockStorage) ListBundles(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.bundles))
	for id, b := range m.bundles {
		out[id] = b.Name
	}
	return out, nil
}

func (m *MockStorage) GetBundle(ctx context.Context, id string) (*content.Bundle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bundles[id]
	if !ok {
		return nil, &BundleNotFoundError{ID: id}
	}
	return b, nil
}

// BundleNotFoundError reports a missing bundle id.
type BundleNotFoundError struct {
	ID string
}

func (e *BundleNotFoundError) Error() string {
	return "bundle not found: " + e.ID
}

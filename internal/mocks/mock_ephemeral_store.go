package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockEphemeralStore is an in-memory domain.EphemeralStore; TTLs are ignored
type MockEphemeralStore struct {
	PutFunc  func(ctx context.Context, key, value string, ttl time.Duration) error
	TakeFunc func(ctx context.Context, key string) (string, error)

	mu     sync.Mutex
	values map[string]string
}

// NewMockEphemeralStore creates a new MockEphemeralStore backed by a map
func NewMockEphemeralStore() *MockEphemeralStore {
	return &MockEphemeralStore{values: make(map[string]string)}
}

// Put stores a value
func (m *MockEphemeralStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Take returns and removes a value
func (m *MockEphemeralStore) Take(ctx context.Context, key string) (string, error) {
	if m.TakeFunc != nil {
		return m.TakeFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrResourceNotFound
	}
	delete(m.values, key)
	return v, nil
}

// Compile-time interface compliance verification
var _ domain.EphemeralStore = (*MockEphemeralStore)(nil)

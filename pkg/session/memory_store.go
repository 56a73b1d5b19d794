package session

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store over an in-process map.
// It backs tests and single-process deployments.
type MemoryStore struct {
	mu           sync.RWMutex
	id           string
	data         map[string]any
	started      bool
	closeOnWrite bool
	previous     map[string]map[string]any
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithCloseOnWrite makes the store close itself after every Write, the way
// cookie-backed stores do. Writes while closed are ignored.
func WithCloseOnWrite() MemoryOption {
	return func(m *MemoryStore) {
		m.closeOnWrite = true
	}
}

// WithData seeds the store with initial data.
func WithData(data map[string]any) MemoryOption {
	return func(m *MemoryStore) {
		maps.Copy(m.data, data)
	}
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		data:     make(map[string]any),
		previous: make(map[string]map[string]any),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start opens the session, assigning an identifier on first use.
func (m *MemoryStore) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.id == "" {
		m.id = uuid.NewString()
	}
	m.started = true
	return nil
}

// IsStarted reports whether the store is open.
func (m *MemoryStore) IsStarted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.started
}

// Read returns a copy of the stored data.
func (m *MemoryStore) Read(ctx context.Context) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]any, len(m.data))
	maps.Copy(out, m.data)
	return out, nil
}

// Write replaces the stored data.
func (m *MemoryStore) Write(ctx context.Context, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closeOnWrite && !m.started {
		return nil
	}

	m.data = make(map[string]any, len(data))
	maps.Copy(m.data, data)

	if m.closeOnWrite {
		m.started = false
	}
	return nil
}

// RegenerateID assigns a new identifier. Unless deleteOld is set a snapshot
// of the data stays retrievable under the previous identifier.
func (m *MemoryStore) RegenerateID(ctx context.Context, deleteOld bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.id != "" && !deleteOld {
		snapshot := make(map[string]any, len(m.data))
		maps.Copy(snapshot, m.data)
		m.previous[m.id] = snapshot
	}
	m.id = uuid.NewString()
	return nil
}

// Destroy removes the data and closes the store.
func (m *MemoryStore) Destroy(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]any)
	m.started = false
	m.id = ""
	return nil
}

// ID returns the current session identifier.
func (m *MemoryStore) ID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id
}

// Previous returns the snapshot kept for an identifier retired by RegenerateID.
func (m *MemoryStore) Previous(id string) (map[string]any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.previous[id]
	return data, ok
}

package storage

import "sync"

// Memory is an in-memory KV implementation used by tests and as a scratch
// backing when no database path is available.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites makes Set return ErrWriteFailed, simulating a full or
	// read-only backing store.
	FailWrites bool
}

var _ KV = (*Memory)(nil)

// ErrWriteFailed is returned by Memory.Set when FailWrites is enabled.
var ErrWriteFailed = errString("storage: write failed")

type errString string

func (e errString) Error() string { return string(e) }

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get retrieves the document stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores the document under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrWriteFailed
	}
	m.data[key] = value
	return nil
}

// Delete removes the key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

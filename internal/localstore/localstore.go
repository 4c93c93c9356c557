// Package localstore is the client-side key-value storage the browser's
// localStorage maps to: a handful of process-wide slots holding the
// serialized cart and session. Absent or corrupt slots must degrade to
// "empty", never fail.
package localstore

import "sync"

// Well-known slot keys. Each slot has exactly one owning component.
const (
	KeyToken = "jwt_token"
	KeyUser  = "nance_user"
	KeyCart  = "nance_cart"
)

// Store is the storage contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the slot value and whether the slot exists.
	Get(key string) (string, bool)
	// Set writes the slot value.
	Set(key, value string) error
	// Delete removes the slot. Deleting an absent slot is a no-op.
	Delete(key string)
}

// Memory is an in-process Store, used in tests and when no state path is
// configured.
type Memory struct {
	mu    sync.RWMutex
	slots map[string]string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
}

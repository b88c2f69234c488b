package preferences

import (
	"sync"
)

// MemoryStore is an in-memory Store used in tests and as a fallback when
// a tenant has no database.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get retrieves a value by key, returning (nil, nil) when absent
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.values[key]
	if !exists {
		return nil, nil
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

// Set upserts a value by key
func (s *MemoryStore) Set(key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)

	s.mu.Lock()
	s.values[key] = copied
	s.mu.Unlock()
	return nil
}

// Remove deletes a key; removing a missing key is not an error
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

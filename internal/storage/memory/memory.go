package memory

import (
	"context"
	"sync"

	"fredagsliga-service/internal/storage"
)

// Store keeps key/value pairs in memory. It backs tests and serves as the
// degraded mode when the durable store cannot be opened.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get returns the stored value for key, or storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Put stores a copy of value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

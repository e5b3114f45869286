// Package memory provides an in-process Blob, the equivalent of browser
// local storage. It is the default backend for tests and the CLI's
// throwaway mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/nanotable/nanotable/storage"
)

// Store keeps values in a map guarded by a RWMutex
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New returns an empty store
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get implements storage.Blob
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, storage.ErrNotExist)
	}

	// Return a copy to prevent external modifications
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put implements storage.Blob
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.values[key] = buf
	return nil
}

// Delete implements storage.Blob
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys implements storage.Blob
func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements storage.Blob
func (s *Store) Close() error { return nil }

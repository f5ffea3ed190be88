// Package memory implements the key-value store contract on a process-local
// map. It is the default backend for development and the workhorse for tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/kv"
)

// Store is an in-memory kv.Store. Values are kept as encoded JSON so that
// Get always returns an independent copy, exactly like a remote backend.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Get decodes the value stored under key into dest.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) error {
	if key == "" {
		return kv.ErrKeyEmpty
	}

	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return kv.ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %v", kv.ErrSerialization, err)
	}
	return nil
}

// Set stores the JSON encoding of value under key.
func (s *Store) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return kv.ErrKeyEmpty
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", kv.ErrSerialization, err)
	}

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// Delete removes a key. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return kv.ErrKeyEmpty
	}

	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored keys. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore keeps step payloads in process memory. Intended for local
// development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates a new in-memory step store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Set stores a step payload with the given TTL
func (s *MemoryStore) Set(ctx context.Context, identity, stepKey string, payload []byte, ttl time.Duration) error {
	if !json.Valid(payload) {
		return fmt.Errorf("refusing to store invalid JSON payload for step %s", stepKey)
	}

	buf := make([]byte, len(payload))
	copy(buf, payload)

	entry := memoryEntry{payload: buf}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[s.entryKey(identity, stepKey)] = entry
	s.mu.Unlock()
	return nil
}

// Get retrieves a step payload, treating expired entries as missing
func (s *MemoryStore) Get(ctx context.Context, identity, stepKey string) ([]byte, error) {
	key := s.entryKey(identity, stepKey)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	buf := make([]byte, len(entry.payload))
	copy(buf, entry.payload)
	return buf, nil
}

// Delete removes a step payload
func (s *MemoryStore) Delete(ctx context.Context, identity, stepKey string) error {
	s.mu.Lock()
	delete(s.entries, s.entryKey(identity, stepKey))
	s.mu.Unlock()
	return nil
}

// HealthCheck always reports healthy for the in-memory backend
func (s *MemoryStore) HealthCheck(ctx context.Context) error {
	return nil
}

// Close clears all entries
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) entryKey(identity, stepKey string) string {
	return identity + ":" + stepKey
}

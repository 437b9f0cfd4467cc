package repository

import (
	"context"
	"sync"

	"github.com/studyhub/progress/internal/domain"
)

// memoryStore implements domain.ProgressStore in process memory
type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory progress store
func NewMemoryStore() domain.ProgressStore {
	return &memoryStore{values: make(map[string]string)}
}

// Read returns the value stored under key
func (s *memoryStore) Read(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Write stores value under key
func (s *memoryStore) Write(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

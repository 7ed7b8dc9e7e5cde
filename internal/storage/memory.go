package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps values in a plain map. Used in tests and when no
// durable backend is configured.
type MemoryStorage struct {
	values map[string][]byte
	mutex  sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.values[key]
	if !exists {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.values, key)
	return nil
}

func (s *MemoryStorage) Exists(_ context.Context, key string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, exists := s.values[key]
	return exists
}

func (s *MemoryStorage) Close() error {
	return nil
}

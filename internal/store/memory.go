package store

import (
	"context"
	"sync"
)

// MemoryStore implements Store using an in-process map.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	lists map[string][][]byte
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), lists: make(map[string][][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	delete(s.lists, key)
	return nil
}

func (s *MemoryStore) Append(ctx context.Context, key string, value []byte, limit int) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.lists[key], v)
	if limit > 0 && len(list) > limit {
		list = append([][]byte(nil), list[len(list)-limit:]...)
	}
	s.lists[key] = list
	return nil
}

func (s *MemoryStore) List(ctx context.Context, key string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, 0, len(s.lists[key]))
	for _, v := range s.lists[key] {
		out = append(out, append([]byte(nil), v...))
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

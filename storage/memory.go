package storage

import (
	cmap "github.com/orcaman/concurrent-map/v2"
)

// MemoryStore keeps values for the lifetime of the process only
type MemoryStore struct {
	values cmap.ConcurrentMap[string, string]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: cmap.New[string]()}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := s.values.Get(key)
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.values.Set(key, value)
	return nil
}

// Keys lists every stored key, in no particular order
func (s *MemoryStore) Keys() []string {
	return s.values.Keys()
}

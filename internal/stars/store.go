package stars

import (
	"context"
	"sync"
)

// Store is the key-value persistence the loader caches into. Values are
// plain scalar strings.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Keys names the two cache entries.
type Keys struct {
	Count     string
	FetchTime string
}

// DefaultKeys are the cache keys used when none are configured.
var DefaultKeys = Keys{
	Count:     "haystack-website.stargazers",
	FetchTime: "haystack-website.stargazers_fetch_time",
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

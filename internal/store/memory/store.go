package memory

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// Store is an in-memory backend for tests and ephemeral runs.
type Store struct {
	cache *gocache.Cache
}

func NewStore() *Store {
	return &Store{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	// Copy so callers can't mutate the stored slice afterwards.
	buf := make([]byte, len(value))
	copy(buf, value)
	s.cache.Set(key, buf, gocache.NoExpiration)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

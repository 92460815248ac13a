// Package kv implements the repositories over the key-value store. Every
// operation is a read-collection, mutate-in-memory, write-collection
// cycle; the per-collection mutex preserves single-writer semantics if
// callers ever overlap.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/meddesk/frontdesk-api/internal/store"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
)

// collection serializes access to one storage key.
type collection struct {
	store   store.Store
	key     string
	mu      sync.Mutex
	metrics *metrics.Metrics
}

func newCollection(s store.Store, key string, m *metrics.Metrics) *collection {
	return &collection{store: s, key: key, metrics: m}
}

// load unmarshals the collection into dest; an absent key yields the
// untouched zero dest.
func (c *collection) load(ctx context.Context, dest interface{}) error {
	data, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return nil
}

func (c *collection) save(ctx context.Context, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	if c.metrics != nil {
		c.metrics.StorageCycles.WithLabelValues(c.key).Inc()
	}
	return nil
}

func (c *collection) lock() func() {
	c.mu.Lock()
	return c.mu.Unlock
}

// exists reports whether the key has ever been written.
func (c *collection) exists(ctx context.Context) (bool, error) {
	_, ok, err := c.store.Get(ctx, c.key)
	return ok, err
}

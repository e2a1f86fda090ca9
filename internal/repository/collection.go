package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/skybook/skybook/internal/store"
)

// collection owns one persisted JSON collection. Every mutation runs under
// the mutex and completes its persistence write before returning, so writes
// to the same entity type are serialized.
type collection[T any] struct {
	mu    sync.Mutex
	key   string
	store store.Store
	items []T
}

func newCollection[T any](ctx context.Context, s store.Store, key string, log *zap.SugaredLogger) (*collection[T], error) {
	c := &collection[T]{key: key, store: s}
	data, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		// Corrupt persisted state resets to empty instead of crashing.
		log.Warnw("resetting corrupted collection", "key", key, "error", err)
		c.items = nil
	}
	return c, nil
}

func (c *collection[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// mutate applies fn to a copy of the items and persists the result before
// swapping it in. A failed save leaves the collection untouched.
func (c *collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]T, len(c.items))
	copy(cp, c.items)
	next, err := fn(cp)
	if err != nil {
		return err
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	c.items = next
	return nil
}

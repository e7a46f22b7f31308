// Package registry keeps an in-process snapshot of the status registry. Statuses
// change rarely and are read on every order operation, so the snapshot is loaded
// lazily, dropped on every admin write and refreshed periodically by a job.
package registry

import (
	"context"
	"sync"

	"repairdesk/internal/core/domain/model/status"
)

// StatusLoader reads every status from storage.
type StatusLoader interface {
	GetAll(ctx context.Context) ([]*status.Status, error)
}

// Cache holds the current *status.Registry. It is safe for concurrent use.
//
// Example:
//
//	cache := registry.NewCache(statusrepo.NewGormStatusRepository(db))
//	reg, err := cache.Current(ctx)
//	if err != nil {
//	    return err
//	}
//	initial, err := reg.Initial()
type Cache struct {
	loader StatusLoader

	mu       sync.RWMutex
	snapshot *status.Registry
	// generation is bumped by Invalidate; a load that started in an older
	// generation must not be stored.
	generation uint64
}

// NewCache creates an empty cache backed by loader.
func NewCache(loader StatusLoader) *Cache {
	return &Cache{loader: loader}
}

// Current returns the cached registry, loading it on first use or after Invalidate.
// The returned registry is an immutable snapshot.
func (c *Cache) Current(ctx context.Context) (*status.Registry, error) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()
	if snapshot != nil {
		return snapshot, nil
	}

	return c.Refresh(ctx)
}

// Refresh reloads the registry from storage and replaces the snapshot. On error the
// previous snapshot is kept. A load overtaken by Invalidate is returned to the
// caller but not cached.
func (c *Cache) Refresh(ctx context.Context) (*status.Registry, error) {
	c.mu.RLock()
	generation := c.generation
	c.mu.RUnlock()

	statuses, err := c.loader.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := status.NewRegistry(statuses)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation == generation {
		c.snapshot = snapshot
	}
	c.mu.Unlock()

	return snapshot, nil
}

// Invalidate drops the snapshot so the next Current call reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.generation++
	c.mu.Unlock()
}

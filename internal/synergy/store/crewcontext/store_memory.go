// Package crewcontext caches the per-vessel crew view behind a small
// cache-or-compute interface. The cache is a derived projection, never a
// source of truth: concurrent populates may race and last-writer-wins.
package crewcontext

import (
	"context"
	"sync"
	"time"

	"crewfit/internal/synergy"
	id "crewfit/pkg/domain"
)

// Loader fetches a fresh crew context from the upstream crew stores.
type Loader func(ctx context.Context, vessel id.VesselID) (*synergy.CrewContext, error)

// InMemoryCache is a TTL cache over a Loader.
type InMemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[id.VesselID]*entry
	load    Loader
	now     func() time.Time
}

type entry struct {
	ctx       *synergy.CrewContext
	expiresAt time.Time
}

// New builds a cache with the given TTL over the loader.
func New(ttl time.Duration, load Loader) *InMemoryCache {
	return &InMemoryCache{
		ttl:     ttl,
		entries: make(map[id.VesselID]*entry),
		load:    load,
		now:     time.Now,
	}
}

// WithClock overrides the time source for tests.
func (c *InMemoryCache) WithClock(now func() time.Time) *InMemoryCache {
	c.now = now
	return c
}

// Get returns the cached context or loads and caches a fresh one.
func (c *InMemoryCache) Get(ctx context.Context, vessel id.VesselID) (*synergy.CrewContext, error) {
	c.mu.RLock()
	cached, ok := c.entries[vessel]
	c.mu.RUnlock()

	if ok && c.now().Before(cached.expiresAt) {
		return cached.ctx, nil
	}

	fresh, err := c.load(ctx, vessel)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[vessel] = &entry{ctx: fresh, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return fresh, nil
}

// Invalidate drops the cached context for a vessel.
func (c *InMemoryCache) Invalidate(_ context.Context, vessel id.VesselID) error {
	c.mu.Lock()
	delete(c.entries, vessel)
	c.mu.Unlock()
	return nil
}

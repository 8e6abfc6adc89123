package pathrouter

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/spanflow/raster"
)

// pairKey identifies a directed (source, destination) query.
type pairKey struct {
	src, dst raster.Point
}

// CachedRouter is a read-through cache in front of another Router. It is meant
// to live for one run and be shared by that run's workers.
type CachedRouter struct {
	next   Router
	mu     sync.RWMutex
	paths  map[pairKey]Path
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedRouter wraps next.
func NewCachedRouter(next Router) *CachedRouter {
	return &CachedRouter{next: next, paths: make(map[pairKey]Path)}
}

// Route serves the pair from the cache or computes and stores it.
// Errors are not cached.
func (c *CachedRouter) Route(ctx context.Context, src, dst raster.Point) (Path, error) {
	k := pairKey{src: src, dst: dst}
	c.mu.RLock()
	p, ok := c.paths[k]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return p, nil
	}

	c.misses.Add(1)
	p, err := c.next.Route(ctx, src, dst)
	if err != nil {
		return Path{}, err
	}
	c.mu.Lock()
	c.paths[k] = p
	c.mu.Unlock()
	return p, nil
}

// Stats returns cache hits and misses so far.
func (c *CachedRouter) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached pairs.
func (c *CachedRouter) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

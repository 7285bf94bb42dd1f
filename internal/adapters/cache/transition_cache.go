package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"bus-transition-engine/internal/domain"
)

// MemoryTransitionCache is an in-process TTL cache for transition results,
// keyed by quantized coordinate pairs. Entries expire by TTL only; the key
// space stays sparse enough that no size-based eviction is needed.
//
// The cache is safe for concurrent use. A disabled cache reports every
// lookup as a miss and drops writes.
type MemoryTransitionCache struct {
	enabled bool
	store   *gocache.Cache
}

func NewMemoryTransitionCache(ttl time.Duration, enabled bool) *MemoryTransitionCache {
	return &MemoryTransitionCache{
		enabled: enabled,
		store:   gocache.New(ttl, 10*time.Minute),
	}
}

func (c *MemoryTransitionCache) Get(key string) (domain.TransitionResult, bool) {
	if !c.enabled {
		return domain.TransitionResult{}, false
	}

	v, ok := c.store.Get(key)
	if !ok {
		return domain.TransitionResult{}, false
	}

	r, ok := v.(domain.TransitionResult)
	if !ok {
		return domain.TransitionResult{}, false
	}
	return r, true
}

func (c *MemoryTransitionCache) Put(key string, result domain.TransitionResult) {
	if !c.enabled {
		return
	}
	c.store.Set(key, result, gocache.DefaultExpiration)
}

// Clear drops every entry and reports how many were held.
func (c *MemoryTransitionCache) Clear() int {
	n := c.store.ItemCount()
	c.store.Flush()
	return n
}

func (c *MemoryTransitionCache) Size() int {
	return c.store.ItemCount()
}

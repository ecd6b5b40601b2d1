package raster

import (
	"context"
	"sync"

	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

// CachedSource wraps a Source with an in-memory LRU cache keyed by
// raster path, so repeated map composes do not re-decode the file.
type CachedSource struct {
	inner   Source
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a raster source.
func NewCachedSource(inner Source, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// Load returns the cached grid for path, falling through to the inner
// source on a miss. Failed loads are not cached so a fixed file can be
// retried without restarting the service.
func (c *CachedSource) Load(ctx context.Context, path string) (*domain.Grid, error) {
	if grid, ok := c.cache.get(path); ok {
		c.metrics.RasterCache.WithLabelValues("hit").Inc()
		return grid, nil
	}
	c.metrics.RasterCache.WithLabelValues("miss").Inc()

	grid, err := c.inner.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	c.cache.put(path, grid)
	return grid, nil
}

// lruCache is a simple thread-safe LRU cache for loaded grids.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *domain.Grid
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (*domain.Grid, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value *domain.Grid) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

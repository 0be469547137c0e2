// Package querycache keeps the results of remote reads keyed by the resource
// name and the filters that produced them. Mutations invalidate by resource
// name; nothing else coordinates reads and writes. A cache built WithMaxAge
// also refetches any entry older than the limit.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"toolrent-console/internal/metrics"
)

// Key identifies one cached read. The first element is the resource name.
type Key []any

func (k Key) Resource() string {
	if len(k) == 0 {
		return ""
	}
	return fmt.Sprint(k[0])
}

func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, "\x1f")
}

type entry struct {
	resource  string
	value     any
	fetchedAt time.Time
}

// Cache is safe for concurrent use
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	// generation bumps on every invalidation so an in-flight fetch that
	// started before it does not repopulate stale data.
	generation map[string]uint64
	epoch      uint64
	group      singleflight.Group

	maxAge  time.Duration
	expires bool
	now     func() time.Time
}

type Option func(*Cache)

// WithMaxAge makes entries older than d stale. Zero refetches on every read
// while still sharing concurrent loads of one key.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cache) {
		c.maxAge = d
		c.expires = true
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New returns a cache whose entries live until invalidated unless
// WithMaxAge is given
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		generation: make(map[string]uint64),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) fresh(e entry) bool {
	return !c.expires || c.now().Sub(e.fetchedAt) < c.maxAge
}

// Fetch returns the cached value for key or loads it with fn. Concurrent
// fetches of the same key share one call. Errors are not cached, and a stale
// entry is a miss.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	id := key.String()
	resource := key.Resource()

	c.mu.RLock()
	e, ok := c.entries[id]
	gen, epoch := c.generation[resource], c.epoch
	c.mu.RUnlock()
	if ok && c.fresh(e) {
		metrics.CacheHits.WithLabelValues(resource).Inc()
		return e.value.(T), nil
	}
	metrics.CacheMisses.WithLabelValues(resource).Inc()

	v, err, _ := c.group.Do(id, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generation[resource] == gen && c.epoch == epoch {
			c.entries[id] = entry{resource: resource, value: value, fetchedAt: c.now()}
		}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops every entry whose resource name is one of resources
func (c *Cache) Invalidate(resources ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range resources {
		c.generation[r]++
		n := 0
		for id, e := range c.entries {
			if e.resource == r {
				delete(c.entries, id)
				n++
			}
		}
		metrics.CacheInvalidations.WithLabelValues(r).Add(float64(n))
	}
}

// InvalidateAll empties the cache
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	for id, e := range c.entries {
		metrics.CacheInvalidations.WithLabelValues(e.resource).Inc()
		delete(c.entries, id)
	}
}

// Cached reports whether key currently has a fresh value
func (c *Cache) Cached(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.String()]
	return ok && c.fresh(e)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

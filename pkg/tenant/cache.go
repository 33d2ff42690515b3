package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache stores registry lookups so resolution does not hit the registry on
// every request.
type Cache interface {
	// Get retrieves a tenant from cache by code.
	Get(ctx context.Context, code string) (*Tenant, bool)

	// Set stores a tenant in cache with the given TTL.
	Set(ctx context.Context, code string, tenant *Tenant, ttl time.Duration)

	// Delete removes a tenant from cache.
	Delete(ctx context.Context, code string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize is the default maximum number of items in the in-memory cache.
const DefaultCacheSize = 1000

type cacheItem struct {
	tenant    *Tenant
	expiresAt time.Time
}

// inMemoryCache is the default cache: bounded, TTL-based, with background
// expiry. Safe for concurrent use.
type inMemoryCache struct {
	mu      sync.RWMutex
	items   map[string]cacheItem
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

// NewInMemoryCache creates an in-memory cache with the default size limit.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory cache with a custom size limit.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	c := &inMemoryCache{
		items:   make(map[string]cacheItem),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *inMemoryCache) Get(_ context.Context, code string) (*Tenant, bool) {
	c.mu.RLock()
	item, exists := c.items[code]
	c.mu.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.tenant, true
}

func (c *inMemoryCache) Set(_ context.Context, code string, tenant *Tenant, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	// Evict an arbitrary expired or oldest-seen entry when full. The cache
	// is an optimization, not a source of truth, so precision is not worth
	// an LRU list here.
	if len(c.items) >= c.maxSize {
		now := time.Now()
		evicted := false
		for k, v := range c.items {
			if now.After(v.expiresAt) {
				delete(c.items, k)
				evicted = true
				break
			}
		}
		if !evicted {
			for k := range c.items {
				delete(c.items, k)
				break
			}
		}
	}

	c.items[code] = cacheItem{tenant: tenant, expiresAt: time.Now().Add(ttl)}
}

func (c *inMemoryCache) Delete(_ context.Context, code string) {
	c.mu.Lock()
	delete(c.items, code)
	c.mu.Unlock()
}

func (c *inMemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

func (c *inMemoryCache) cleanup() {
	defer close(c.done)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, v := range c.items {
				if now.After(v.expiresAt) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

// NoOpCache disables caching, useful for testing or when caching is unwanted.
type NoOpCache struct{}

func (NoOpCache) Get(context.Context, string) (*Tenant, bool)                 { return nil, false }
func (NoOpCache) Set(context.Context, string, *Tenant, time.Duration)         {}
func (NoOpCache) Delete(context.Context, string)                              {}
func (NoOpCache) Close() error                                                { return nil }

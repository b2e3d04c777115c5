package external

import (
	"context"
	"sync"
	"time"

	"weatherproxy.app/pkg/errors"
)

// MemoryCacheProvider is an unbounded in-process TTL cache. Entries are
// removed lazily, by the first read that finds them stale.
type MemoryCacheProvider struct {
	data  map[string]memoryCacheItem
	mutex sync.Mutex
	now   func() time.Time
}

type memoryCacheItem struct {
	data       []byte
	insertedAt time.Time
	ttl        time.Duration
}

func (i memoryCacheItem) expired(now time.Time) bool {
	return now.Sub(i.insertedAt) > i.ttl
}

func NewMemoryCacheProvider() *MemoryCacheProvider {
	return NewMemoryCacheProviderWithClock(time.Now)
}

// NewMemoryCacheProviderWithClock creates a cache that reads time from now
func NewMemoryCacheProviderWithClock(now func() time.Time) *MemoryCacheProvider {
	return &MemoryCacheProvider{
		data: make(map[string]memoryCacheItem),
		now:  now,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	item, exists := c.data[key]
	if !exists {
		return nil, errors.NewNotFoundError("cache miss")
	}
	if item.expired(c.now()) {
		delete(c.data, key)
		return nil, errors.NewNotFoundError("cache miss")
	}

	return item.data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = memoryCacheItem{
		data:       value,
		insertedAt: c.now(),
		ttl:        ttl,
	}

	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}
	if item.expired(c.now()) {
		delete(c.data, key)
		return false, nil
	}
	return true, nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]memoryCacheItem)
	return nil
}

// Len returns the number of stored entries, stale ones included
func (c *MemoryCacheProvider) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.data)
}

// Ping always succeeds; it lets the memory backend satisfy ports.Pinger
func (c *MemoryCacheProvider) Ping(ctx context.Context) error {
	return nil
}

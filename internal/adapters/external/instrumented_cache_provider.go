package external

import (
	"context"
	"time"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// InstrumentedCacheProvider records hits, misses and operation latency for a
// wrapped CacheProvider.
type InstrumentedCacheProvider struct {
	cache   ports.CacheProvider
	metrics ports.CacheMetrics
}

func NewInstrumentedCacheProvider(cache ports.CacheProvider, metrics ports.CacheMetrics) *InstrumentedCacheProvider {
	return &InstrumentedCacheProvider{
		cache:   cache,
		metrics: metrics,
	}
}

func (c *InstrumentedCacheProvider) measure(operation string, fn func()) {
	start := time.Now()
	fn()
	c.metrics.RecordOperation(operation, time.Since(start))
}

func (c *InstrumentedCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	c.measure("get", func() {
		data, err = c.cache.Get(ctx, key)
	})

	switch {
	case err == nil:
		c.metrics.RecordHit()
	case errors.IsNotFoundError(err):
		c.metrics.RecordMiss()
	}
	return data, err
}

func (c *InstrumentedCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var err error
	c.measure("set", func() {
		err = c.cache.Set(ctx, key, value, ttl)
	})
	return err
}

func (c *InstrumentedCacheProvider) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, key)
}

func (c *InstrumentedCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	return c.cache.Exists(ctx, key)
}

func (c *InstrumentedCacheProvider) Clear(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

package external

import (
	"context"
	"encoding/json"
	"time"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// ResponseCacheAdapter bridges the byte-oriented CacheProvider to the typed
// ResponseCache by storing values as JSON.
type ResponseCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

// NewResponseCacheAdapter creates a response cache on top of a generic cache provider
func NewResponseCacheAdapter(cacheProvider ports.CacheProvider) *ResponseCacheAdapter {
	return &ResponseCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get decodes the cached value for key into target
func (a *ResponseCacheAdapter) Get(ctx context.Context, key string, target interface{}) error {
	data, err := a.cacheProvider.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, target); err != nil {
		return errors.NewCacheError("failed to deserialize cached response", err)
	}
	return nil
}

// Set encodes value as JSON and stores it for ttl
func (a *ResponseCacheAdapter) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("failed to serialize response", err)
	}

	return a.cacheProvider.Set(ctx, key, data, ttl)
}

package infrastructure

import (
	"context"

	"weatherproxy.app/internal/ports"
)

// EntryCounter is implemented by cache backends that can report their size
type EntryCounter interface {
	Len() int
}

// MetricsCollectorAdapter implements the MetricsCollector port behind /api/metrics
type MetricsCollectorAdapter struct {
	cacheMetrics ports.CacheMetrics
	config       ports.ConfigProvider
	entries      EntryCounter
	providerName string
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	CacheMetrics ports.CacheMetrics
	Config       ports.ConfigProvider
	// Entries is optional; Redis does not report a size.
	Entries      EntryCounter
	ProviderName string
}

// NewMetricsCollectorAdapter creates a new metrics collector adapter
func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		cacheMetrics: config.CacheMetrics,
		config:       config.Config,
		entries:      config.Entries,
		providerName: config.ProviderName,
	}
}

// GetMetrics returns cache statistics and the weather settings in effect
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	weatherConfig := m.config.GetWeatherConfig()
	stats := m.cacheMetrics.GetStats()

	cache := map[string]interface{}{
		"type":      m.config.GetCacheConfig().Type,
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"total_ops": stats.TotalOps,
		"hit_ratio": stats.HitRatio,
		"updated":   stats.LastUpdated,
	}
	if m.entries != nil {
		cache["entries"] = m.entries.Len()
	}

	return map[string]interface{}{
		"cache": cache,
		"weather": map[string]interface{}{
			"provider":                 m.providerName,
			"cache_enabled":            weatherConfig.EnableCache,
			"cache_ttl_seconds":        weatherConfig.CacheTTL.Seconds(),
			"current_timeout_seconds":  weatherConfig.CurrentTimeout.Seconds(),
			"forecast_timeout_seconds": weatherConfig.ForecastTimeout.Seconds(),
		},
	}, nil
}

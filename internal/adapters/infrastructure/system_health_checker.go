package infrastructure

import (
	"context"

	"weatherproxy.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	cacheChecker      ports.HealthChecker
	weatherAPIChecker ports.HealthChecker
	configProvider    ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	CacheChecker      ports.HealthChecker
	WeatherAPIChecker ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		cacheChecker:      config.CacheChecker,
		weatherAPIChecker: config.WeatherAPIChecker,
		configProvider:    config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus)

	if s.cacheChecker != nil {
		results["cache"] = s.cacheChecker.Check(ctx)
	}

	if s.weatherAPIChecker != nil {
		results["weatherAPI"] = s.weatherAPIChecker.Check(ctx)
	}

	if s.configProvider != nil {
		weatherConfig := s.configProvider.GetWeatherConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    "healthy",
			Details: map[string]interface{}{
				"cacheType":       s.configProvider.GetCacheConfig().Type,
				"cacheEnabled":    weatherConfig.EnableCache,
				"cacheTTLSeconds": weatherConfig.CacheTTL.Seconds(),
			},
		}
	}

	return results
}

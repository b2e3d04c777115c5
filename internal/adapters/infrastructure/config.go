package infrastructure

import (
	"time"

	"weatherproxy.app/internal/config"
	"weatherproxy.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
		Mode: c.config.Server.Mode,
	}
}

// GetWeatherConfig returns weather configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	w := c.config.Weather
	return ports.WeatherConfig{
		EnableCache:     w.EnableCache,
		CacheTTL:        time.Duration(w.CacheTTLSeconds) * time.Second,
		CurrentTimeout:  time.Duration(w.CurrentTimeoutSeconds) * time.Second,
		ForecastTimeout: time.Duration(w.ForecastTimeoutSeconds) * time.Second,
	}
}

// GetCacheConfig returns cache configuration. The Redis password is not exposed.
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			DB:           c.config.Cache.Redis.DB,
			KeyPrefix:    c.config.Cache.Redis.KeyPrefix,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}

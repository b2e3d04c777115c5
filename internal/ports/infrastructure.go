package ports

import (
	"context"
	"time"
)

// WeatherConfig represents weather service configuration
type WeatherConfig struct {
	EnableCache     bool
	CacheTTL        time.Duration
	CurrentTimeout  time.Duration
	ForecastTimeout time.Duration
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
	Mode string
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type  string
	Redis RedisConfig
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	DB           int
	KeyPrefix    string
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetServerConfig() ServerConfig
	GetCacheConfig() CacheConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// UpstreamMetrics records calls made to the weather provider
type UpstreamMetrics interface {
	RecordUpstreamCall(endpoint string, outcome string, duration time.Duration)
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weatherproxy.app/pkg/errors"
)

const (
	maxRedisDB             = 15
	maxCacheTTLSeconds     = 86400
	maxUpstreamTimeoutSecs = 60
	maxPortNumber          = 65535
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Cache   CacheConfig   `split_words:"true"`
	Log     LogConfig     `split_words:"true"`
}

type ServerConfig struct {
	Port int    `envconfig:"PORT" default:"5000"`
	Mode string `envconfig:"SERVER_MODE" default:"release"`
}

// WeatherConfig holds everything needed to reach OpenWeatherMap except the
// credential itself, which is read from APIKeyEnv on every request.
type WeatherConfig struct {
	BaseURL                string `envconfig:"OPENWEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	APIKeyEnv              string `envconfig:"OPENWEATHER_API_KEY_ENV" default:"OPENWEATHER_API_KEY"`
	EnableCache            bool   `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	CacheTTLSeconds        int    `envconfig:"WEATHER_CACHE_TTL_SECONDS" default:"300"`
	CurrentTimeoutSeconds  int    `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"5"`
	ForecastTimeoutSeconds int    `envconfig:"FORECAST_TIMEOUT_SECONDS" default:"6"`
	EnableLogging          bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath            string `envconfig:"WEATHER_LOG_FILE_PATH" default:""`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix    string `envconfig:"REDIS_KEY_PREFIX" default:"weatherproxy:"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("PORT must be between 1 and 65535", nil)
	}
	switch s.Mode {
	case "debug", "release", "test":
		return nil
	default:
		return errors.NewConfigurationError("SERVER_MODE must be one of: debug, release, test", nil)
	}
}

func (w *WeatherConfig) Validate() error {
	if w.BaseURL == "" {
		return errors.NewConfigurationError("OPENWEATHER_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	if strings.TrimSpace(w.APIKeyEnv) == "" {
		return errors.NewConfigurationError("OPENWEATHER_API_KEY_ENV cannot be empty", nil)
	}
	if w.CacheTTLSeconds < 1 || w.CacheTTLSeconds > maxCacheTTLSeconds {
		return errors.NewConfigurationError(
			fmt.Sprintf("WEATHER_CACHE_TTL_SECONDS must be between 1 and %d seconds", maxCacheTTLSeconds), nil)
	}
	if w.CurrentTimeoutSeconds < 1 || w.CurrentTimeoutSeconds > maxUpstreamTimeoutSecs {
		return errors.NewConfigurationError("WEATHER_TIMEOUT_SECONDS must be between 1 and 60 seconds", nil)
	}
	if w.ForecastTimeoutSeconds < 1 || w.ForecastTimeoutSeconds > maxUpstreamTimeoutSecs {
		return errors.NewConfigurationError("FORECAST_TIMEOUT_SECONDS must be between 1 and 60 seconds", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (l *LogConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherproxy.app/pkg/errors"
)

// unsetAll blanks every variable LoadConfig reads so defaults apply.
func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_MODE",
		"OPENWEATHER_API_BASE_URL", "OPENWEATHER_API_KEY_ENV", "WEATHER_ENABLE_CACHE",
		"WEATHER_CACHE_TTL_SECONDS", "WEATHER_TIMEOUT_SECONDS", "FORECAST_TIMEOUT_SECONDS",
		"WEATHER_ENABLE_LOGGING", "WEATHER_LOG_FILE_PATH",
		"CACHE_TYPE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX",
		"REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT", "REDIS_WRITE_TIMEOUT",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		unsetAll(t)

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 5000, config.Server.Port)
		assert.Equal(t, "release", config.Server.Mode)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.BaseURL)
		assert.Equal(t, "OPENWEATHER_API_KEY", config.Weather.APIKeyEnv)
		assert.True(t, config.Weather.EnableCache)
		assert.Equal(t, 300, config.Weather.CacheTTLSeconds)
		assert.Equal(t, 5, config.Weather.CurrentTimeoutSeconds)
		assert.Equal(t, 6, config.Weather.ForecastTimeoutSeconds)
		assert.Equal(t, CacheTypeMemory, config.Cache.Type)
		assert.Equal(t, "localhost:6379", config.Cache.Redis.Addr)
		assert.Equal(t, "info", config.Log.Level)
	})

	t.Run("CustomValues", func(t *testing.T) {
		unsetAll(t)
		t.Setenv("PORT", "9090")
		t.Setenv("SERVER_MODE", "debug")
		t.Setenv("OPENWEATHER_API_BASE_URL", "http://localhost:8081")
		t.Setenv("WEATHER_CACHE_TTL_SECONDS", "60")
		t.Setenv("WEATHER_TIMEOUT_SECONDS", "2")
		t.Setenv("FORECAST_TIMEOUT_SECONDS", "3")
		t.Setenv("CACHE_TYPE", "redis")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("LOG_LEVEL", "debug")

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "debug", config.Server.Mode)
		assert.Equal(t, "http://localhost:8081", config.Weather.BaseURL)
		assert.Equal(t, 60, config.Weather.CacheTTLSeconds)
		assert.Equal(t, 2, config.Weather.CurrentTimeoutSeconds)
		assert.Equal(t, 3, config.Weather.ForecastTimeoutSeconds)
		assert.Equal(t, CacheTypeRedis, config.Cache.Type)
		assert.Equal(t, "redis:6379", config.Cache.Redis.Addr)
		assert.Equal(t, 2, config.Cache.Redis.DB)
		assert.Equal(t, "debug", config.Log.Level)
	})

	t.Run("InvalidCacheType", func(t *testing.T) {
		unsetAll(t)
		t.Setenv("CACHE_TYPE", "memcached")

		config, err := LoadConfig()

		assert.Nil(t, config)
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "CACHE_TYPE must be one of")
	})

	t.Run("UnparsableNumber", func(t *testing.T) {
		unsetAll(t)
		t.Setenv("PORT", "not-a-port")

		config, err := LoadConfig()

		assert.Nil(t, config)
		assert.True(t, errors.IsConfigurationError(err))
	})
}

func TestWeatherConfig_Validate(t *testing.T) {
	valid := func() WeatherConfig {
		return WeatherConfig{
			BaseURL:                "https://api.openweathermap.org/data/2.5",
			APIKeyEnv:              "OPENWEATHER_API_KEY",
			CacheTTLSeconds:        300,
			CurrentTimeoutSeconds:  5,
			ForecastTimeoutSeconds: 6,
		}
	}

	tests := []struct {
		name     string
		mutate   func(*WeatherConfig)
		errorMsg string
	}{
		{"Valid", func(*WeatherConfig) {}, ""},
		{"EmptyBaseURL", func(w *WeatherConfig) { w.BaseURL = "" }, "OPENWEATHER_API_BASE_URL cannot be empty"},
		{"BadScheme", func(w *WeatherConfig) { w.BaseURL = "ftp://example.com" }, "must start with http"},
		{"EmptyKeyEnv", func(w *WeatherConfig) { w.APIKeyEnv = " " }, "OPENWEATHER_API_KEY_ENV"},
		{"ZeroTTL", func(w *WeatherConfig) { w.CacheTTLSeconds = 0 }, "WEATHER_CACHE_TTL_SECONDS"},
		{"ZeroCurrentTimeout", func(w *WeatherConfig) { w.CurrentTimeoutSeconds = 0 }, "WEATHER_TIMEOUT_SECONDS"},
		{"HugeForecastTimeout", func(w *WeatherConfig) { w.ForecastTimeoutSeconds = 600 }, "FORECAST_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestRedisConfig_Validate(t *testing.T) {
	cfg := RedisConfig{Addr: "localhost:6379", DB: 16, DialTimeout: 5, ReadTimeout: 3, WriteTimeout: 3}
	assert.ErrorContains(t, cfg.Validate(), "REDIS_DB must be between 0 and 15")

	cfg.DB = 0
	cfg.ReadTimeout = 0
	assert.ErrorContains(t, cfg.Validate(), "REDIS_READ_TIMEOUT")

	cfg.ReadTimeout = 3
	assert.NoError(t, cfg.Validate())
}

func TestCacheTypeFromString(t *testing.T) {
	assert.Equal(t, CacheTypeMemory, CacheTypeFromString("memory"))
	assert.Equal(t, CacheTypeRedis, CacheTypeFromString(" Redis "))
	assert.Equal(t, CacheTypeUnknown, CacheTypeFromString("disk"))
	assert.Equal(t, "unknown", CacheTypeUnknown.String())
}

package infrastructure

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherproxy.app/internal/mocks"
	"weatherproxy.app/pkg/errors"
)

type stubPinger struct {
	err         error
	hadDeadline bool
}

func (p *stubPinger) Ping(ctx context.Context) error {
	_, p.hadDeadline = ctx.Deadline()
	return p.err
}

func TestCacheHealthChecker_Check(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		pinger := &stubPinger{}
		status := NewCacheHealthChecker(pinger, "memory").Check(context.Background())

		assert.Equal(t, "cache", status.Component)
		assert.Equal(t, "healthy", status.Status)
		assert.Empty(t, status.Error)
		assert.Equal(t, "memory", status.Details["type"])
		assert.True(t, pinger.hadDeadline)
	})

	t.Run("Unhealthy", func(t *testing.T) {
		pinger := &stubPinger{err: fmt.Errorf("connection refused")}
		status := NewCacheHealthChecker(pinger, "redis").Check(context.Background())

		assert.Equal(t, "unhealthy", status.Status)
		assert.Equal(t, "connection refused", status.Error)
	})
}

func TestCredentialHealthChecker_Check(t *testing.T) {
	t.Run("Configured", func(t *testing.T) {
		credentials := mocks.NewCredentialProvider(t)
		credentials.On("GetCredentialName").Return("OPENWEATHER_API_KEY")
		credentials.On("GetAPIKey").Return("secret-key", nil)

		status := NewCredentialHealthChecker(credentials).Check(context.Background())

		assert.Equal(t, "weatherAPI", status.Component)
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, true, status.Details["configured"])
		assert.NotContains(t, fmt.Sprint(status), "secret-key")
	})

	t.Run("Missing", func(t *testing.T) {
		credentials := mocks.NewCredentialProvider(t)
		credentials.On("GetCredentialName").Return("OPENWEATHER_API_KEY")
		credentials.On("GetAPIKey").Return("", errors.NewConfigurationError("Server misconfigured: OPENWEATHER_API_KEY not set", nil))

		status := NewCredentialHealthChecker(credentials).Check(context.Background())

		assert.Equal(t, "unhealthy", status.Status)
		assert.Equal(t, "OPENWEATHER_API_KEY not set", status.Error)
		assert.Equal(t, false, status.Details["configured"])
	})
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	credentials := mocks.NewCredentialProvider(t)
	credentials.On("GetCredentialName").Return("OPENWEATHER_API_KEY")
	credentials.On("GetAPIKey").Return("key", nil)

	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		CacheChecker:      NewCacheHealthChecker(&stubPinger{}, "memory"),
		WeatherAPIChecker: NewCredentialHealthChecker(credentials),
		ConfigProvider:    newWeatherConfigMock(t, "memory"),
	})

	results := checker.CheckAll(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, "healthy", results["cache"].Status)
	assert.Equal(t, "healthy", results["weatherAPI"].Status)
	assert.Equal(t, "memory", results["config"].Details["cacheType"])
	assert.Equal(t, true, results["config"].Details["cacheEnabled"])
	assert.Equal(t, (300 * time.Second).Seconds(), results["config"].Details["cacheTTLSeconds"])
}

func TestSystemHealthChecker_SkipsMissingCheckers(t *testing.T) {
	results := NewSystemHealthChecker(SystemHealthCheckerConfig{}).CheckAll(context.Background())
	assert.Empty(t, results)
}

// Package mocks holds testify mocks for the interfaces in internal/ports.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weatherproxy.app/internal/ports"
)

// expectationsAsserter is satisfied by every mock in this package
type expectationsAsserter interface {
	AssertExpectations(t mock.TestingT) bool
}

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t cleanupT, m expectationsAsserter) {
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// WeatherProvider is a mock of ports.WeatherProvider
type WeatherProvider struct {
	mock.Mock
}

func NewWeatherProvider(t cleanupT) *WeatherProvider {
	m := &WeatherProvider{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *WeatherProvider) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.CurrentWeatherData, error) {
	args := m.Called(ctx, query)
	data, _ := args.Get(0).(*ports.CurrentWeatherData)
	return data, args.Error(1)
}

func (m *WeatherProvider) GetForecast(ctx context.Context, query ports.WeatherQuery) ([]ports.ForecastSlot, error) {
	args := m.Called(ctx, query)
	slots, _ := args.Get(0).([]ports.ForecastSlot)
	return slots, args.Error(1)
}

func (m *WeatherProvider) GetProviderName() string {
	return m.Called().String(0)
}

// ResponseCache is a mock of ports.ResponseCache
type ResponseCache struct {
	mock.Mock
}

func NewResponseCache(t cleanupT) *ResponseCache {
	m := &ResponseCache{}
	m.Test(t)
	register(t, m)
	return m
}

// Get records the call; use Run to populate target on a simulated hit.
func (m *ResponseCache) Get(ctx context.Context, key string, target interface{}) error {
	return m.Called(ctx, key, target).Error(0)
}

func (m *ResponseCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

// CacheProvider is a mock of ports.CacheProvider
type CacheProvider struct {
	mock.Mock
}

func NewCacheProvider(t cleanupT) *CacheProvider {
	m := &CacheProvider{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *CacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *CacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *CacheProvider) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *CacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *CacheProvider) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// CredentialProvider is a mock of ports.CredentialProvider
type CredentialProvider struct {
	mock.Mock
}

func NewCredentialProvider(t cleanupT) *CredentialProvider {
	m := &CredentialProvider{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *CredentialProvider) GetAPIKey() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *CredentialProvider) GetCredentialName() string {
	return m.Called().String(0)
}

// ConfigProvider is a mock of ports.ConfigProvider
type ConfigProvider struct {
	mock.Mock
}

func NewConfigProvider(t cleanupT) *ConfigProvider {
	m := &ConfigProvider{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *ConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	return m.Called().Get(0).(ports.WeatherConfig)
}

func (m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

func (m *ConfigProvider) GetCacheConfig() ports.CacheConfig {
	return m.Called().Get(0).(ports.CacheConfig)
}

// Logger is a mock of ports.Logger. Fields are passed as a single slice argument.
type Logger struct {
	mock.Mock
}

func NewLogger(t cleanupT) *Logger {
	m := &Logger{}
	m.Test(t)
	register(t, m)
	return m
}

// NewNopLogger returns a Logger that accepts any call
func NewNopLogger() *Logger {
	m := &Logger{}
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return m
}

func (m *Logger) Debug(msg string, fields ...ports.Field) { m.Called(msg, fields) }
func (m *Logger) Info(msg string, fields ...ports.Field)  { m.Called(msg, fields) }
func (m *Logger) Warn(msg string, fields ...ports.Field)  { m.Called(msg, fields) }
func (m *Logger) Error(msg string, fields ...ports.Field) { m.Called(msg, fields) }

// UpstreamMetrics is a mock of ports.UpstreamMetrics
type UpstreamMetrics struct {
	mock.Mock
}

func NewUpstreamMetrics(t cleanupT) *UpstreamMetrics {
	m := &UpstreamMetrics{}
	m.Test(t)
	register(t, m)
	return m
}

func (m *UpstreamMetrics) RecordUpstreamCall(endpoint string, outcome string, duration time.Duration) {
	m.Called(endpoint, outcome, duration)
}

// Package ports defines the interfaces for external dependencies in our hexagonal architecture.
// These interfaces are implemented by adapters and mocked for testing.
package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherProvider WeatherProvider
	Credentials     CredentialProvider
	ResponseCache   ResponseCache

	// Cache
	CacheProvider CacheProvider
	CacheMetrics  CacheMetrics

	// Metrics
	UpstreamMetrics UpstreamMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
}

package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"weatherproxy.app/internal/adapters/external"
	"weatherproxy.app/internal/adapters/infrastructure"
	"weatherproxy.app/internal/config"
	"weatherproxy.app/internal/ports"
)

type DependencyContainer struct {
	config     *config.Config
	ports      *ports.ApplicationPorts
	cache      external.CacheBackend
	registry   *prometheus.Registry
	fileLogger *infrastructure.FileLoggerAdapter
}

// DependencyOptions overrides infrastructure normally built from configuration
type DependencyOptions struct {
	// Registry receives all metrics; a fresh registry with Go and process
	// collectors is created when nil.
	Registry *prometheus.Registry
	// HTTPClient performs upstream requests; http.DefaultClient when nil.
	HTTPClient external.HTTPClient
	// Logger is the application logger; slog.Default() when nil.
	Logger *slog.Logger
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:   cfg,
		registry: opts.Registry,
	}

	if container.registry == nil {
		container.registry = prometheus.NewRegistry()
		container.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if err := container.initializePorts(opts); err != nil {
		if cleanupErr := container.Cleanup(); cleanupErr != nil {
			slog.Warn("Failed to release resources after init error", "error", cleanupErr)
		}
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts(opts DependencyOptions) error {
	slog.Info("Initializing ports...")

	logger := ports.Logger(infrastructure.NewSlogLoggerAdapter(opts.Logger))

	// Upstream request log also goes to a file when one is configured
	providerLogger := logger
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLogger = fileLogger
			providerLogger = infrastructure.NewMultiLogger(logger, fileLogger)
			slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}

	metrics := infrastructure.NewPrometheusMetrics(c.registry, c.config.Cache.Type.String())

	cacheBackend, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		slog.Error("Failed to create cache provider", "error", err)
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = cacheBackend

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)

	instrumentedCache := external.NewInstrumentedCacheProvider(cacheBackend, metrics)

	var weatherProvider ports.WeatherProvider = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		BaseURL: c.config.Weather.BaseURL,
		Client:  opts.HTTPClient,
		Logger:  logger,
	})
	weatherProvider = external.NewWeatherProviderMetricsDecorator(weatherProvider, metrics)

	if c.config.Weather.EnableLogging {
		weatherProvider = external.NewWeatherProviderLoggingDecorator(weatherProvider, providerLogger)
		slog.Info("Weather provider logging enabled")
	}

	c.ports = &ports.ApplicationPorts{
		WeatherProvider: weatherProvider,
		Credentials:     infrastructure.NewEnvCredentialProvider(c.config.Weather.APIKeyEnv),
		ResponseCache:   external.NewResponseCacheAdapter(instrumentedCache),

		CacheProvider: instrumentedCache,
		CacheMetrics:  metrics,

		UpstreamMetrics: metrics,

		ConfigProvider: infrastructure.NewConfigProviderAdapter(c.config),
		Logger:         logger,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// CacheBackend returns the raw cache backend, used for health checks and size reporting
func (c *DependencyContainer) CacheBackend() external.CacheBackend {
	return c.cache
}

// Registry returns the registry served on /metrics
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// Cleanup releases the cache connection and the log file
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	if closer, ok := c.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			firstErr = fmt.Errorf("close cache: %w", err)
		}
	}
	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log file: %w", err)
		}
	}
	return firstErr
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherproxy.app/internal/adapters/api"
	"weatherproxy.app/internal/adapters/infrastructure"
	"weatherproxy.app/internal/config"
	"weatherproxy.app/internal/core/weather"
	"weatherproxy.app/internal/ports"
)

const providerName = "openweathermap"

type Application struct {
	config *config.Config

	// Use Cases
	weatherUseCase *weather.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return NewApplicationWithOptions(cfg, DependencyOptions{})
}

// NewApplicationWithOptions builds the application from an already loaded
// configuration, letting callers substitute the registry, HTTP client and logger.
func NewApplicationWithOptions(cfg *config.Config, opts DependencyOptions) (*Application, error) {
	deps, err := NewDependencyContainer(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: a.ports.WeatherProvider,
		Cache:           a.ports.ResponseCache,
		Credentials:     a.ports.Credentials,
		Config:          a.ports.ConfigProvider,
		Logger:          a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	cacheType := a.config.Cache.Type.String()

	metricsConfig := infrastructure.MetricsCollectorConfig{
		CacheMetrics: a.ports.CacheMetrics,
		Config:       a.ports.ConfigProvider,
		ProviderName: providerName,
	}
	if counter, ok := a.deps.CacheBackend().(infrastructure.EntryCounter); ok {
		metricsConfig.Entries = counter
	}
	metricsCollector := infrastructure.NewMetricsCollectorAdapter(metricsConfig)

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		CacheChecker:      infrastructure.NewCacheHealthChecker(a.deps.CacheBackend(), cacheType),
		WeatherAPIChecker: infrastructure.NewCredentialHealthChecker(a.ports.Credentials),
		ConfigProvider:    a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
			Mode: a.config.Server.Mode,
		},
		WeatherUseCase:      a.weatherUseCase,
		MetricsCollector:    metricsCollector,
		SystemHealthChecker: systemHealthChecker,
		MetricsGatherer:     a.deps.Registry(),
		Logger:              a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	// Write timeout must outlast the slowest upstream call
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start serves HTTP until the server is shut down
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}

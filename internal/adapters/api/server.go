// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherproxy.app/internal/core/weather"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
	Mode string
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	config           ServerConfig
	weatherUseCase   WeatherUseCase
	metricsCollector ports.MetricsCollector
	healthChecker    ports.SystemHealthChecker
	logger           ports.Logger
}

// WeatherUseCase is the use case the HTTP adapter depends on
type WeatherUseCase interface {
	GetCurrentWeather(ctx context.Context, request weather.LocationRequest) (*weather.CurrentWeatherResult, error)
	GetForecast(ctx context.Context, request weather.LocationRequest) (*weather.ForecastResult, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	WeatherUseCase      WeatherUseCase
	MetricsCollector    ports.MetricsCollector
	SystemHealthChecker ports.SystemHealthChecker
	// MetricsGatherer backs GET /metrics; prometheus.DefaultGatherer when nil.
	MetricsGatherer prometheus.Gatherer
	Logger          ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if opts.Config.Mode != "" {
		gin.SetMode(opts.Config.Mode)
	}

	server := &HTTPServerAdapter{
		router:           gin.New(),
		config:           opts.Config,
		weatherUseCase:   opts.WeatherUseCase,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.SystemHealthChecker,
		logger:           opts.Logger,
	}

	gatherer := opts.MetricsGatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	server.router.Use(requestID(), server.requestLogger(), server.recovery())
	server.setupRoutes(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.SystemHealthChecker == nil {
		return errors.NewValidationError("system health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes(metricsHandler http.Handler) {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/forecast", s.getForecast)
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(metricsHandler))
}

// GetRouter returns the router used as the http.Server handler
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

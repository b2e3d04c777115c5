package external

import (
	"context"
	"time"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging.
// The credential in the query is never logged.
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger) *WeatherProviderLoggingDecorator {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// GetCurrentWeather wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.CurrentWeatherData, error) {
	done := d.start("weather", query)
	data, err := d.provider.GetCurrentWeather(ctx, query)
	done(err)
	return data, err
}

// GetForecast wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) GetForecast(ctx context.Context, query ports.WeatherQuery) ([]ports.ForecastSlot, error) {
	done := d.start("forecast", query)
	slots, err := d.provider.GetForecast(ctx, query)
	if err == nil {
		d.logger.Debug("Forecast slots received",
			ports.F("provider", d.provider.GetProviderName()),
			ports.F("slots", len(slots)))
	}
	done(err)
	return slots, err
}

// GetProviderName returns the name of the wrapped provider with logging indication
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return "logged(" + d.provider.GetProviderName() + ")"
}

func (d *WeatherProviderLoggingDecorator) start(endpoint string, query ports.WeatherQuery) func(error) {
	base := append([]ports.Field{
		ports.F("provider", d.provider.GetProviderName()),
		ports.F("endpoint", endpoint),
	}, locationFields(query)...)

	d.logger.Info("Weather API request started", withFields(base, ports.F("event", "request"))...)
	startTime := time.Now()

	return func(err error) {
		duration := ports.F("duration_ms", time.Since(startTime).Milliseconds())
		if err != nil {
			d.logger.Error("Weather API request failed", withFields(base,
				duration,
				ports.F("event", "error"),
				ports.F("error_type", errors.TypeOf(err).String()),
				ports.F("error", err.Error()))...)
			return
		}
		d.logger.Info("Weather API request completed", withFields(base, duration, ports.F("event", "response"))...)
	}
}

func withFields(base []ports.Field, extra ...ports.Field) []ports.Field {
	out := make([]ports.Field, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

func locationFields(query ports.WeatherQuery) []ports.Field {
	if query.City != "" {
		return []ports.Field{ports.F("city", query.City)}
	}
	return []ports.Field{ports.F("lat", query.Lat), ports.F("lon", query.Lon)}
}

package external

import (
	"context"
	"time"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// Upstream call outcomes reported to UpstreamMetrics
const (
	OutcomeSuccess       = "success"
	OutcomeUpstreamError = "upstream_error"
	OutcomeUnreachable   = "unreachable"
)

// WeatherProviderMetricsDecorator reports every upstream call with its outcome and duration
type WeatherProviderMetricsDecorator struct {
	provider ports.WeatherProvider
	metrics  ports.UpstreamMetrics
}

func NewWeatherProviderMetricsDecorator(provider ports.WeatherProvider, metrics ports.UpstreamMetrics) *WeatherProviderMetricsDecorator {
	return &WeatherProviderMetricsDecorator{
		provider: provider,
		metrics:  metrics,
	}
}

func (d *WeatherProviderMetricsDecorator) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.CurrentWeatherData, error) {
	start := time.Now()
	data, err := d.provider.GetCurrentWeather(ctx, query)
	d.metrics.RecordUpstreamCall("weather", outcomeOf(err), time.Since(start))
	return data, err
}

func (d *WeatherProviderMetricsDecorator) GetForecast(ctx context.Context, query ports.WeatherQuery) ([]ports.ForecastSlot, error) {
	start := time.Now()
	slots, err := d.provider.GetForecast(ctx, query)
	d.metrics.RecordUpstreamCall("forecast", outcomeOf(err), time.Since(start))
	return slots, err
}

func (d *WeatherProviderMetricsDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.IsUpstreamError(err):
		return OutcomeUpstreamError
	default:
		return OutcomeUnreachable
	}
}

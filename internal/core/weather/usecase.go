package weather

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

type UseCase struct {
	provider    ports.WeatherProvider
	cache       ports.ResponseCache
	credentials ports.CredentialProvider
	config      ports.ConfigProvider
	logger      ports.Logger

	// inflight coalesces concurrent misses on the same cache key into one upstream call
	inflight singleflight.Group
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProvider
	Cache           ports.ResponseCache
	Credentials     ports.CredentialProvider
	Config          ports.ConfigProvider
	Logger          ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Credentials == nil {
		return nil, errors.NewValidationError("credential provider is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		provider:    deps.WeatherProvider,
		cache:       deps.Cache,
		credentials: deps.Credentials,
		config:      deps.Config,
		logger:      deps.Logger,
	}, nil
}

// GetCurrentWeather returns current conditions for the location, served from
// cache when a fresh entry exists.
func (uc *UseCase) GetCurrentWeather(ctx context.Context, request LocationRequest) (*CurrentWeatherResult, error) {
	apiKey, err := uc.prepare(&request)
	if err != nil {
		return nil, err
	}

	key := request.CacheKey(EndpointCurrent)
	var cached CurrentConditions
	if uc.lookup(ctx, key, &cached) {
		return &CurrentWeatherResult{Cached: true, Data: cached}, nil
	}

	timeout := uc.config.GetWeatherConfig().CurrentTimeout
	value, err := uc.fetchOnce(ctx, key, timeout, func(ctx context.Context) (interface{}, error) {
		data, err := uc.provider.GetCurrentWeather(ctx, request.toQuery(apiKey))
		if err != nil {
			return nil, err
		}
		conditions := convertCurrentWeather(data)
		uc.store(ctx, key, conditions)
		return conditions, nil
	})
	if err != nil {
		uc.logger.Error("Failed to get current weather",
			ports.F("key", key),
			ports.F("error", err))
		return nil, fmt.Errorf("get current weather for %s: %w", key, err)
	}

	return &CurrentWeatherResult{Cached: false, Data: value.(CurrentConditions)}, nil
}

// GetForecast returns the multi-day forecast for the location summarized per
// calendar day, served from cache when a fresh entry exists.
func (uc *UseCase) GetForecast(ctx context.Context, request LocationRequest) (*ForecastResult, error) {
	apiKey, err := uc.prepare(&request)
	if err != nil {
		return nil, err
	}

	key := request.CacheKey(EndpointForecast)
	var cached []DailySummary
	if uc.lookup(ctx, key, &cached) {
		if cached == nil {
			cached = []DailySummary{}
		}
		return &ForecastResult{Cached: true, Data: cached}, nil
	}

	timeout := uc.config.GetWeatherConfig().ForecastTimeout
	value, err := uc.fetchOnce(ctx, key, timeout, func(ctx context.Context) (interface{}, error) {
		slots, err := uc.provider.GetForecast(ctx, request.toQuery(apiKey))
		if err != nil {
			return nil, err
		}
		daily := AggregateForecast(convertForecastSlots(slots))
		uc.store(ctx, key, daily)
		return daily, nil
	})
	if err != nil {
		uc.logger.Error("Failed to get forecast",
			ports.F("key", key),
			ports.F("error", err))
		return nil, fmt.Errorf("get forecast for %s: %w", key, err)
	}

	uc.logger.Debug("Forecast aggregated", ports.F("key", key))
	return &ForecastResult{Cached: false, Data: value.([]DailySummary)}, nil
}

// prepare resolves the credential and then validates the request, so a
// misconfigured server reports 500 regardless of the query.
func (uc *UseCase) prepare(request *LocationRequest) (string, error) {
	apiKey, err := uc.credentials.GetAPIKey()
	if err != nil {
		uc.logger.Error("Upstream credential unavailable",
			ports.F("credential", uc.credentials.GetCredentialName()))
		return "", err
	}

	request.Normalize()
	if err := request.IsValid(); err != nil {
		return "", errors.NewValidationError(err.Error())
	}
	return apiKey, nil
}

func (uc *UseCase) lookup(ctx context.Context, key string, target interface{}) bool {
	if !uc.config.GetWeatherConfig().EnableCache {
		return false
	}

	err := uc.cache.Get(ctx, key, target)
	if err == nil {
		uc.logger.Debug("Cache hit", ports.F("key", key))
		return true
	}
	if !errors.IsNotFoundError(err) {
		uc.logger.Warn("Cache lookup failed, treating as miss",
			ports.F("key", key),
			ports.F("error", err))
	}
	return false
}

func (uc *UseCase) store(ctx context.Context, key string, value interface{}) {
	cfg := uc.config.GetWeatherConfig()
	if !cfg.EnableCache {
		return
	}
	if err := uc.cache.Set(ctx, key, value, cfg.CacheTTL); err != nil {
		uc.logger.Warn("Failed to cache upstream response",
			ports.F("key", key),
			ports.F("error", err))
	}
}

// fetchOnce runs fetch at most once per key among concurrent callers. The
// upstream call is detached from the caller's cancellation so one client
// disconnecting does not fail the others waiting on the same key.
func (uc *UseCase) fetchOnce(ctx context.Context, key string, timeout time.Duration, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	value, err, shared := uc.inflight.Do(key, func() (interface{}, error) {
		callCtx := context.WithoutCancel(ctx)
		if timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, timeout)
			defer cancel()
		}
		return fetch(callCtx)
	})
	if shared {
		uc.logger.Debug("Upstream call shared with concurrent request", ports.F("key", key))
	}
	return value, err
}

func convertCurrentWeather(data *ports.CurrentWeatherData) CurrentConditions {
	if data == nil {
		return CurrentConditions{}
	}
	return CurrentConditions{
		Name:    data.Name,
		Coord:   data.Coord,
		Weather: data.Weather,
		Main:    data.Main,
		Wind:    data.Wind,
		Sys:     data.Sys,
	}
}

func convertForecastSlots(slots []ports.ForecastSlot) []Observation {
	observations := make([]Observation, 0, len(slots))
	for _, slot := range slots {
		o := Observation{Timestamp: slot.DateTime}
		if slot.Temperature != nil {
			o.Temp = slot.Temperature.Temp
			o.TempMin = slot.Temperature.TempMin
			o.TempMax = slot.Temperature.TempMax
		}
		for _, c := range slot.Conditions {
			o.Conditions = append(o.Conditions, Condition{Icon: c.Icon, Description: c.Description})
		}
		observations = append(observations, o)
	}
	return observations
}

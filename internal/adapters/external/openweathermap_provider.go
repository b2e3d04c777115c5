// Package external provides adapters for external services:
// the OpenWeatherMap client and the cache backends.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

const (
	defaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"
	maxUpstreamBodyBytes     = 4 << 20

	weatherUnreachableMessage  = "Failed to reach weather service"
	weatherUpstreamMessage     = "Weather API error"
	forecastUnreachableMessage = "Failed to reach forecast service"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider.
// Timeouts come from the caller's context, so Client needs none of its own.
type OpenWeatherMapProviderParams struct {
	BaseURL string
	Client  HTTPClient
	Logger  ports.Logger
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapURL
	}
	client := params.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &OpenWeatherMapProviderAdapter{
		baseURL: baseURL,
		client:  client,
		logger:  params.Logger,
	}
}

// currentWeatherPayload keeps the projected fields verbatim
type currentWeatherPayload struct {
	Name    json.RawMessage `json:"name"`
	Coord   json.RawMessage `json:"coord"`
	Weather json.RawMessage `json:"weather"`
	Main    json.RawMessage `json:"main"`
	Wind    json.RawMessage `json:"wind"`
	Sys     json.RawMessage `json:"sys"`
}

// GetCurrentWeather retrieves current conditions from OpenWeatherMap. A non-200
// status is reported as an UpstreamError carrying the upstream status and body.
func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.CurrentWeatherData, error) {
	status, body, err := p.fetch(ctx, "weather", query)
	if err != nil {
		return nil, errors.NewUpstreamUnreachableError(weatherUnreachableMessage, err.Error(), err)
	}

	if status != http.StatusOK {
		return nil, errors.NewUpstreamError(weatherUpstreamMessage, status, string(body))
	}

	var payload currentWeatherPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.NewUpstreamUnreachableError(weatherUnreachableMessage, "invalid JSON from upstream", err)
	}

	return &ports.CurrentWeatherData{
		Name:    nullToNil(payload.Name),
		Coord:   nullToNil(payload.Coord),
		Weather: nullToNil(payload.Weather),
		Main:    nullToNil(payload.Main),
		Wind:    nullToNil(payload.Wind),
		Sys:     nullToNil(payload.Sys),
	}, nil
}

// GetForecast retrieves the 5 day / 3 hour forecast from OpenWeatherMap. Any
// non-2xx status is reported as unreachable.
func (p *OpenWeatherMapProviderAdapter) GetForecast(ctx context.Context, query ports.WeatherQuery) ([]ports.ForecastSlot, error) {
	status, body, err := p.fetch(ctx, "forecast", query)
	if err != nil {
		return nil, errors.NewUpstreamUnreachableError(forecastUnreachableMessage, err.Error(), err)
	}

	if status < 200 || status > 299 {
		return nil, errors.NewUpstreamUnreachableError(forecastUnreachableMessage,
			fmt.Sprintf("upstream returned status %d", status), nil)
	}

	slots, err := decodeForecast(body)
	if err != nil {
		return nil, errors.NewUpstreamUnreachableError(forecastUnreachableMessage, "invalid JSON from upstream", err)
	}
	return slots, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

// fetch performs the GET and returns status and body. The returned error
// never contains the request URL, which carries the credential.
func (p *OpenWeatherMapProviderAdapter) fetch(ctx context.Context, resource string, query ports.WeatherQuery) (int, []byte, error) {
	params := url.Values{}
	params.Set("appid", query.APIKey)
	params.Set("units", "metric")
	if query.City != "" {
		params.Set("q", query.City)
	} else {
		params.Set("lat", query.Lat)
		params.Set("lon", query.Lon)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+resource+"?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", resource, redact(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, redact(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && p.logger != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read %s response: %w", resource, redact(err))
	}
	return resp.StatusCode, body, nil
}

// redact strips the URL from transport errors
func redact(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}

func nullToNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

// decodeForecast extracts slots from a forecast payload. Only a body that is
// not a JSON object fails; malformed slot fields are left unset.
func decodeForecast(body []byte) ([]ports.ForecastSlot, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if raw, ok := payload["list"]; ok {
		_ = json.Unmarshal(raw, &items)
	}

	slots := make([]ports.ForecastSlot, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}
		slots = append(slots, decodeSlot(fields))
	}
	return slots, nil
}

func decodeSlot(fields map[string]json.RawMessage) ports.ForecastSlot {
	var slot ports.ForecastSlot
	_ = json.Unmarshal(fields["dt_txt"], &slot.DateTime)

	var main map[string]json.RawMessage
	if json.Unmarshal(fields["main"], &main) == nil && main != nil {
		slot.Temperature = &ports.SlotTemperature{
			Temp:    optionalFloat(main["temp"]),
			TempMin: optionalFloat(main["temp_min"]),
			TempMax: optionalFloat(main["temp_max"]),
		}
	}

	var conditions []map[string]json.RawMessage
	if json.Unmarshal(fields["weather"], &conditions) == nil {
		for _, c := range conditions {
			var sc ports.SlotCondition
			_ = json.Unmarshal(c["icon"], &sc.Icon)
			_ = json.Unmarshal(c["description"], &sc.Description)
			slot.Conditions = append(slot.Conditions, sc)
		}
	}
	return slot
}

func optionalFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

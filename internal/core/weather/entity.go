package weather

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/validation"
)

// LocationRequiredMessage is returned when neither q nor a lat/lon pair is given
const LocationRequiredMessage = "Provide q=city or lat & lon"

var validate = validator.New()

// Endpoint discriminates the two proxied upstream resources
type Endpoint int

const (
	EndpointCurrent Endpoint = iota
	EndpointForecast
)

// String returns the name used in logs and metrics
func (e Endpoint) String() string {
	switch e {
	case EndpointForecast:
		return "forecast"
	default:
		return "weather"
	}
}

func (e Endpoint) keyPrefix() string {
	if e == EndpointForecast {
		return "forecast:"
	}
	return ""
}

// LocationRequest represents a request for weather at a city or at coordinates.
// City takes precedence when both forms are supplied. Coordinates are passed
// to the upstream provider as given; it decides whether they are acceptable.
type LocationRequest struct {
	City string
	Lat  string `validate:"required_without=City"`
	Lon  string `validate:"required_without=City"`
}

// Normalize trims surrounding whitespace from every parameter
func (r *LocationRequest) Normalize() {
	r.City, _ = validation.TrimAndValidate(r.City)
	r.Lat, _ = validation.TrimAndValidate(r.Lat)
	r.Lon, _ = validation.TrimAndValidate(r.Lon)
}

// HasCity reports whether the request names a city
func (r LocationRequest) HasCity() bool {
	return validation.IsNotEmpty(r.City)
}

// HasCoordinates reports whether both lat and lon are present
func (r LocationRequest) HasCoordinates() bool {
	return validation.IsNotEmpty(r.Lat) && validation.IsNotEmpty(r.Lon)
}

// IsValid reports whether the request names a city or both coordinates.
// Blank values count as missing.
func (r LocationRequest) IsValid() error {
	normalized := r
	normalized.Normalize()
	if err := validate.Struct(normalized); err != nil {
		return fmt.Errorf("%s", LocationRequiredMessage)
	}
	return nil
}

// CacheKey builds the cache key for the request on the given endpoint:
// "q:<city>" or "lat:<lat>|lon:<lon>", prefixed with "forecast:" for forecasts.
func (r LocationRequest) CacheKey(endpoint Endpoint) string {
	if r.HasCity() {
		return endpoint.keyPrefix() + "q:" + r.City
	}
	return endpoint.keyPrefix() + "lat:" + r.Lat + "|lon:" + r.Lon
}

func (r LocationRequest) toQuery(apiKey string) ports.WeatherQuery {
	if r.HasCity() {
		return ports.WeatherQuery{APIKey: apiKey, City: r.City}
	}
	return ports.WeatherQuery{APIKey: apiKey, Lat: r.Lat, Lon: r.Lon}
}

// CurrentConditions is the subset of the upstream current weather payload
// returned to callers. Absent upstream fields serialize as null.
type CurrentConditions struct {
	Name    json.RawMessage `json:"name"`
	Coord   json.RawMessage `json:"coord"`
	Weather json.RawMessage `json:"weather"`
	Main    json.RawMessage `json:"main"`
	Wind    json.RawMessage `json:"wind"`
	Sys     json.RawMessage `json:"sys"`
}

// CurrentWeatherResult is the outcome of a current conditions lookup
type CurrentWeatherResult struct {
	Cached bool
	Data   CurrentConditions
}

// ForecastResult is the outcome of a forecast lookup
type ForecastResult struct {
	Cached bool
	Data   []DailySummary
}

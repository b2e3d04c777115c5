package ports

import (
	"context"
	"encoding/json"
)

// WeatherQuery carries one upstream request. Either City or Lat+Lon is set.
type WeatherQuery struct {
	APIKey string
	City   string
	Lat    string
	Lon    string
}

// CurrentWeatherData is the projection of the upstream current conditions payload.
// Each field is passed through verbatim; a missing field stays nil.
type CurrentWeatherData struct {
	Name    json.RawMessage
	Coord   json.RawMessage
	Weather json.RawMessage
	Main    json.RawMessage
	Wind    json.RawMessage
	Sys     json.RawMessage
}

// ForecastSlot is one 3-hour sample from the upstream forecast list
type ForecastSlot struct {
	DateTime    string
	Temperature *SlotTemperature
	Conditions  []SlotCondition
}

// SlotTemperature holds the temperature block of a slot; nil fields were absent upstream
type SlotTemperature struct {
	Temp    *float64
	TempMin *float64
	TempMax *float64
}

// SlotCondition is one entry of a slot's conditions list
type SlotCondition struct {
	Icon        string
	Description string
}

// WeatherProvider defines the contract for the upstream weather data provider
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, query WeatherQuery) (*CurrentWeatherData, error)
	GetForecast(ctx context.Context, query WeatherQuery) ([]ForecastSlot, error)
	GetProviderName() string
}

// CredentialProvider resolves the upstream API credential on every call
type CredentialProvider interface {
	GetAPIKey() (string, error)
	GetCredentialName() string
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"weatherproxy.app/internal/core/weather"
	"weatherproxy.app/internal/ports"
	errorspkg "weatherproxy.app/pkg/errors"
)

// locationQuery is the query string accepted by /api/weather and /api/forecast
type locationQuery struct {
	City string `form:"q"`
	Lat  string `form:"lat"`
	Lon  string `form:"lon"`
}

func (q locationQuery) toRequest() weather.LocationRequest {
	return weather.LocationRequest{City: q.City, Lat: q.Lat, Lon: q.Lon}
}

// WeatherResponse is the envelope of both proxy endpoints
type WeatherResponse struct {
	Cached bool        `json:"cached"`
	Data   interface{} `json:"data"`
}

// bindLocation reads the location parameters. Deciding whether they name a
// location is left to the use case.
func bindLocation(c *gin.Context) (weather.LocationRequest, error) {
	var query locationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return weather.LocationRequest{}, errorspkg.NewValidationError(weather.LocationRequiredMessage)
	}
	return query.toRequest(), nil
}

// getWeather handles GET /api/weather requests
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	request, err := bindLocation(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	result, err := s.weatherUseCase.GetCurrentWeather(c.Request.Context(), request)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, WeatherResponse{Cached: result.Cached, Data: result.Data})
}

// getForecast handles GET /api/forecast requests
func (s *HTTPServerAdapter) getForecast(c *gin.Context) {
	request, err := bindLocation(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	result, err := s.weatherUseCase.GetForecast(c.Request.Context(), request)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, WeatherResponse{Cached: result.Cached, Data: result.Data})
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth handles GET /api/health requests. Any unhealthy component turns
// the response into a 503.
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	components := s.healthChecker.CheckAll(c.Request.Context())

	response := HealthResponse{Status: "healthy", Components: components}
	statusCode := http.StatusOK
	for _, component := range components {
		if !strings.EqualFold(component.Status, "healthy") {
			response.Status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(statusCode, response)
}

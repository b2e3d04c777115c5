package integration

import (
	"net/http"
	"os"
	"strings"
)

func (s *IntegrationTestSuite) TestHealth() {
	w := s.get("/api/health")

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("healthy", body["status"])
	components := body["components"].(map[string]interface{})
	s.Contains(components, "cache")
	s.Contains(components, "weatherAPI")
	s.Contains(components, "config")
	s.NotContains(w.Body.String(), apiKey)
}

func (s *IntegrationTestSuite) TestMetricsEndpoints() {
	s.get("/api/weather?q=London")
	s.get("/api/weather?q=London")

	w := s.get("/api/metrics")
	s.Equal(http.StatusOK, w.Code)
	cache := s.decode(w)["cache"].(map[string]interface{})
	s.Equal(float64(1), cache["hits"])
	s.Equal(float64(1), cache["misses"])
	s.Equal(float64(1), cache["entries"])

	prom := s.get("/metrics")
	s.Equal(http.StatusOK, prom.Code)
	s.Contains(prom.Body.String(), `weatherproxy_upstream_requests_total{endpoint="weather",outcome="success"} 1`)
	s.Contains(prom.Body.String(), `weatherproxy_cache_hits_total{cache_type="memory"} 1`)
}

func (s *IntegrationTestSuite) TestUpstreamRequestsAreLoggedToFile() {
	s.Equal(http.StatusOK, s.get("/api/weather?q=London").Code)
	s.Equal(http.StatusOK, s.get("/api/forecast?lat=1&lon=2").Code)

	content, err := os.ReadFile(s.logPath)
	s.Require().NoError(err)

	log := string(content)
	s.Contains(log, "Weather API request started")
	s.Contains(log, "Weather API request completed")
	s.Contains(log, `"city":"London"`)
	s.Contains(log, `"endpoint":"forecast"`)
	s.False(strings.Contains(log, apiKey), "credential must never be logged")
}

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"weatherproxy.app/internal/app"
	"weatherproxy.app/internal/config"
)

const (
	apiKeyEnv = "WEATHERPROXY_IT_API_KEY"
	apiKey    = "integration-secret-key"
)

// fakeOpenWeatherMap serves canned /weather and /forecast answers and records
// what it was asked
type fakeOpenWeatherMap struct {
	mu           sync.Mutex
	calls        map[string]int
	lastQuery    url.Values
	status       int
	currentBody  string
	forecastBody string
	delay        time.Duration
}

func newFakeOpenWeatherMap() *fakeOpenWeatherMap {
	return &fakeOpenWeatherMap{
		calls:  make(map[string]int),
		status: http.StatusOK,
		currentBody: `{
			"name": "London",
			"coord": {"lon": -0.13, "lat": 51.51},
			"weather": [{"id": 803, "icon": "04d", "description": "broken clouds"}],
			"main": {"temp": 15.2, "humidity": 71},
			"wind": {"speed": 4.6},
			"sys": {"country": "GB"},
			"visibility": 10000,
			"cod": 200
		}`,
		forecastBody: `{"cod": "200", "list": [
			{"dt_txt": "2025-01-01 00:00:00", "main": {"temp": 10, "temp_min": 8, "temp_max": 12}, "weather": [{"icon": "01d", "description": "clear"}]},
			{"dt_txt": "2025-01-01 03:00:00", "main": {"temp": 20, "temp_min": 18, "temp_max": 22}, "weather": [{"icon": "01d", "description": "clear"}]},
			{"dt_txt": "2025-01-02 00:00:00", "main": {"temp": 5, "temp_min": 4.44, "temp_max": 6.06}, "weather": [{"icon": "10d", "description": "light rain"}]}
		]}`,
	}
}

func (f *fakeOpenWeatherMap) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	f.lastQuery = r.URL.Query()
	status, delay := f.status, f.delay
	body := f.currentBody
	if r.URL.Path == "/forecast" {
		body = f.forecastBody
	}
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (f *fakeOpenWeatherMap) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeOpenWeatherMap) query() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func (f *fakeOpenWeatherMap) respondWith(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.currentBody = body
	f.forecastBody = body
}

type IntegrationTestSuite struct {
	suite.Suite
	upstream    *fakeOpenWeatherMap
	server      *httptest.Server
	application *app.Application
	router      *gin.Engine
	config      *config.Config
	logPath     string
}

func newTestConfig(baseURL, logPath string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 5000, Mode: gin.TestMode},
		Weather: config.WeatherConfig{
			BaseURL:                baseURL,
			APIKeyEnv:              apiKeyEnv,
			EnableCache:            true,
			CacheTTLSeconds:        300,
			CurrentTimeoutSeconds:  5,
			ForecastTimeoutSeconds: 6,
			EnableLogging:          true,
			LogFilePath:            logPath,
		},
		Cache: config.CacheConfig{Type: config.CacheTypeMemory},
		Log:   config.LogConfig{Level: "info"},
	}
}

// SetupTest builds a fresh application per test so no cache state leaks between tests
func (s *IntegrationTestSuite) SetupTest() {
	s.T().Setenv(apiKeyEnv, apiKey)

	s.upstream = newFakeOpenWeatherMap()
	s.server = httptest.NewServer(s.upstream)
	s.logPath = filepath.Join(s.T().TempDir(), "upstream.log")
	s.config = newTestConfig(s.server.URL, s.logPath)

	application, err := app.NewApplicationWithOptions(s.config, app.DependencyOptions{
		Registry: prometheus.NewRegistry(),
	})
	s.Require().NoError(err)

	s.application = application
	s.router = application.GetRouter()
}

func (s *IntegrationTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.NoError(s.application.Shutdown(ctx))
	s.server.Close()
}

func (s *IntegrationTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *IntegrationTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

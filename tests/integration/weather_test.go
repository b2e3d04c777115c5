package integration

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

func (s *IntegrationTestSuite) TestGetWeather_MissThenHit() {
	first := s.get("/api/weather?q=London")
	s.Equal(http.StatusOK, first.Code)

	body := s.decode(first)
	s.Equal(false, body["cached"])
	data := body["data"].(map[string]interface{})
	s.Equal("London", data["name"])
	s.Equal(map[string]interface{}{"country": "GB"}, data["sys"])
	s.NotContains(data, "visibility")
	s.NotContains(data, "cod")

	query := s.upstream.query()
	s.Equal("London", query.Get("q"))
	s.Equal(apiKey, query.Get("appid"))
	s.Equal("metric", query.Get("units"))

	second := s.get("/api/weather?q=London")
	s.Equal(http.StatusOK, second.Code)
	cached := s.decode(second)
	s.Equal(true, cached["cached"])
	s.Equal(body["data"], cached["data"])

	s.Equal(1, s.upstream.callCount("/weather"))
}

func (s *IntegrationTestSuite) TestGetWeather_CityIsTrimmedForCacheKey() {
	s.Equal(http.StatusOK, s.get("/api/weather?q=%20London%20").Code)
	s.Equal(true, s.decode(s.get("/api/weather?q=London"))["cached"])
	s.Equal(1, s.upstream.callCount("/weather"))
}

func (s *IntegrationTestSuite) TestGetWeather_Coordinates() {
	w := s.get("/api/weather?lat=51.51&lon=-0.13")

	s.Equal(http.StatusOK, w.Code)
	query := s.upstream.query()
	s.Equal("51.51", query.Get("lat"))
	s.Equal("-0.13", query.Get("lon"))
	s.False(query.Has("q"))
}

func (s *IntegrationTestSuite) TestGetWeather_ValidationDoesNotReachUpstream() {
	for _, path := range []string{"/api/weather", "/api/weather?lat=1", "/api/forecast?lon=1", "/api/weather?q=%20&lat=%20&lon=2"} {
		w := s.get(path)
		s.Equal(http.StatusBadRequest, w.Code, path)
	}
	s.Equal("Provide q=city or lat & lon", s.decode(s.get("/api/weather"))["error"])
	s.Equal(0, s.upstream.callCount("/weather"))
	s.Equal(0, s.upstream.callCount("/forecast"))
}

func (s *IntegrationTestSuite) TestGetWeather_UncheckedCoordinatesReachUpstream() {
	s.upstream.respondWith(http.StatusBadRequest, `{"cod":"400","message":"wrong latitude"}`)

	for _, tc := range []struct{ path, lat string }{
		{"/api/weather?lat=abc&lon=1", "abc"},
		{"/api/weather?lat=100&lon=0", "100"},
		{"/api/weather?lat=51.5,&lon=0", "51.5,"},
	} {
		w := s.get(tc.path)
		s.Equal(http.StatusBadRequest, w.Code, tc.path)
		s.JSONEq(`{"cod":"400","message":"wrong latitude"}`, s.decode(w)["detail"].(string))
		s.Equal(tc.lat, s.upstream.query().Get("lat"))
	}
	s.Equal(3, s.upstream.callCount("/weather"))
}

func (s *IntegrationTestSuite) TestGetWeather_MissingCredentialWinsOverMissingLocation() {
	s.T().Setenv(apiKeyEnv, "")

	for _, path := range []string{"/api/weather", "/api/forecast"} {
		w := s.get(path)
		s.Equal(http.StatusInternalServerError, w.Code, path)
		s.Equal("Server misconfigured: "+apiKeyEnv+" not set", s.decode(w)["error"])
	}
}

func (s *IntegrationTestSuite) TestGetWeather_NonErrorUpstreamStatusPassthrough() {
	s.upstream.respondWith(http.StatusNonAuthoritativeInfo, `{"cod":203}`)

	w := s.get("/api/weather?q=London")

	s.Equal(http.StatusNonAuthoritativeInfo, w.Code)
	s.JSONEq(`{"cod":203}`, s.decode(w)["detail"].(string))
}

func (s *IntegrationTestSuite) TestGetWeather_MissingCredential() {
	s.T().Setenv(apiKeyEnv, "  ")

	w := s.get("/api/weather?q=London")

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Server misconfigured: "+apiKeyEnv+" not set", s.decode(w)["error"])
	s.Equal(0, s.upstream.callCount("/weather"))

	health := s.get("/api/health")
	s.Equal(http.StatusServiceUnavailable, health.Code)
}

func (s *IntegrationTestSuite) TestGetWeather_UpstreamStatusPassthroughNotCached() {
	s.upstream.respondWith(http.StatusNotFound, `{"cod":"404","message":"city not found"}`)

	for i := 0; i < 2; i++ {
		w := s.get("/api/weather?q=Atlantis")
		s.Equal(http.StatusNotFound, w.Code)
		body := s.decode(w)
		s.Equal("Weather API error", body["error"])
		s.JSONEq(`{"cod":"404","message":"city not found"}`, body["detail"].(string))
	}
	s.Equal(2, s.upstream.callCount("/weather"))
}

func (s *IntegrationTestSuite) TestGetWeather_UpstreamDown() {
	s.server.Close()

	w := s.get("/api/weather?q=London")

	s.Equal(http.StatusBadGateway, w.Code)
	body := s.decode(w)
	s.Equal("Failed to reach weather service", body["error"])
	s.NotEmpty(body["detail"])
	s.NotContains(w.Body.String(), apiKey)
}

func (s *IntegrationTestSuite) TestGetWeather_ConcurrentMissesShareUpstreamCall() {
	s.upstream.mu.Lock()
	s.upstream.delay = 200 * time.Millisecond
	s.upstream.mu.Unlock()

	const callers = 10
	codes := make([]int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/weather?q=London", nil)
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		s.Equal(http.StatusOK, code)
	}
	s.Equal(1, s.upstream.callCount("/weather"))
}

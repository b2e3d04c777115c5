package integration

import (
	"net/http"
)

func (s *IntegrationTestSuite) TestGetForecast_AggregatesDailySummaries() {
	w := s.get("/api/forecast?q=London")

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{
		"cached": false,
		"data": [
			{"date": "2025-01-01", "temp_avg": 15, "temp_min": 8, "temp_max": 22, "icon": "01d", "description": "clear"},
			{"date": "2025-01-02", "temp_avg": 5, "temp_min": 4.4, "temp_max": 6.1, "icon": "10d", "description": "light rain"}
		]
	}`, w.Body.String())

	cached := s.get("/api/forecast?q=London")
	s.Equal(true, s.decode(cached)["cached"])
	s.Equal(1, s.upstream.callCount("/forecast"))
}

func (s *IntegrationTestSuite) TestGetForecast_SeparateCacheFromCurrent() {
	s.Equal(http.StatusOK, s.get("/api/weather?q=London").Code)
	s.Equal(false, s.decode(s.get("/api/forecast?q=London"))["cached"])
	s.Equal(1, s.upstream.callCount("/weather"))
	s.Equal(1, s.upstream.callCount("/forecast"))
}

func (s *IntegrationTestSuite) TestGetForecast_EmptyListIsCached() {
	s.upstream.respondWith(http.StatusOK, `{"cod":"200","list":[]}`)

	first := s.get("/api/forecast?lat=10&lon=20")
	s.Equal(http.StatusOK, first.Code)
	s.JSONEq(`{"cached":false,"data":[]}`, first.Body.String())

	second := s.get("/api/forecast?lat=10&lon=20")
	s.JSONEq(`{"cached":true,"data":[]}`, second.Body.String())
	s.Equal(1, s.upstream.callCount("/forecast"))
}

func (s *IntegrationTestSuite) TestGetForecast_UpstreamErrorIsBadGateway() {
	s.upstream.respondWith(http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`)

	w := s.get("/api/forecast?q=London")

	s.Equal(http.StatusBadGateway, w.Code)
	body := s.decode(w)
	s.Equal("Failed to reach forecast service", body["error"])
	s.Equal("upstream returned status 401", body["detail"])
}

func (s *IntegrationTestSuite) TestGetForecast_UncheckedCoordinatesRejectedUpstreamIsBadGateway() {
	s.upstream.respondWith(http.StatusBadRequest, `{"cod":"400","message":"wrong latitude"}`)

	w := s.get("/api/forecast?lat=abc&lon=1")

	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal("upstream returned status 400", s.decode(w)["detail"])
	s.Equal("abc", s.upstream.query().Get("lat"))
	s.Equal(1, s.upstream.callCount("/forecast"))
}

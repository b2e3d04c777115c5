package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type city struct {
	Name        string
	Country     string
	Lat         float64
	Lon         float64
	Temp        float64
	Humidity    int
	Icon        string
	Description string
}

var cities = map[string]city{
	"london": {Name: "London", Country: "GB", Lat: 51.51, Lon: -0.13, Temp: 15.0, Humidity: 76, Icon: "03d", Description: "scattered clouds"},
	"paris":  {Name: "Paris", Country: "FR", Lat: 48.85, Lon: 2.35, Temp: 18.0, Humidity: 68, Icon: "01d", Description: "clear sky"},
	"berlin": {Name: "Berlin", Country: "DE", Lat: 52.52, Lon: 13.41, Temp: 12.0, Humidity: 82, Icon: "04d", Description: "overcast clouds"},
}

func currentPayload(c city) gin.H {
	return gin.H{
		"name":    c.Name,
		"coord":   gin.H{"lat": c.Lat, "lon": c.Lon},
		"weather": []gin.H{{"id": 800, "main": "Clouds", "icon": c.Icon, "description": c.Description}},
		"main":    gin.H{"temp": c.Temp, "humidity": c.Humidity, "temp_min": c.Temp - 2, "temp_max": c.Temp + 2},
		"wind":    gin.H{"speed": 4.1, "deg": 240},
		"sys":     gin.H{"country": c.Country},
		"cod":     200,
	}
}

// forecastPayload returns five days of 3-hour slots starting at midnight UTC today
func forecastPayload(c city) gin.H {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	list := make([]gin.H, 0, 40)
	for i := 0; i < 40; i++ {
		at := start.Add(time.Duration(i*3) * time.Hour)
		swing := float64(at.Hour()-12) / 3
		list = append(list, gin.H{
			"dt":     at.Unix(),
			"dt_txt": at.Format("2006-01-02 15:04:05"),
			"main": gin.H{
				"temp":     c.Temp - swing,
				"temp_min": c.Temp - swing - 1,
				"temp_max": c.Temp - swing + 1,
			},
			"weather": []gin.H{{"icon": c.Icon, "description": c.Description}},
		})
	}
	return gin.H{"cod": "200", "cnt": len(list), "list": list, "city": gin.H{"name": c.Name}}
}

// lookup resolves q or lat/lon to a known city, writing the upstream-style
// error itself when it cannot
func lookup(c *gin.Context) (city, bool) {
	if c.Query("appid") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key"})
		return city{}, false
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	switch q {
	case "servererror":
		c.JSON(http.StatusInternalServerError, gin.H{"cod": 500, "message": "Internal server error"})
		return city{}, false
	case "timeout":
		time.Sleep(10 * time.Second)
		c.AbortWithStatus(http.StatusGatewayTimeout)
		return city{}, false
	case "":
		if c.Query("lat") == "" || c.Query("lon") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"cod": "400", "message": "Nothing to geocode"})
			return city{}, false
		}
		return city{
			Name:        fmt.Sprintf("%s,%s", c.Query("lat"), c.Query("lon")),
			Temp:        20,
			Humidity:    50,
			Icon:        "02d",
			Description: "few clouds",
		}, true
	}

	found, ok := cities[q]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
		return city{}, false
	}
	return found, true
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/weather", func(c *gin.Context) {
		if found, ok := lookup(c); ok {
			c.JSON(http.StatusOK, currentPayload(found))
		}
	})

	r.GET("/forecast", func(c *gin.Context) {
		if found, ok := lookup(c); ok {
			c.JSON(http.StatusOK, forecastPayload(found))
		}
	})

	slog.Info("Mock OpenWeatherMap server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

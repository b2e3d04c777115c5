package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"time"
)

const defaultProxyURL = "http://localhost:5000"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runIntegrationTests()
	case "mock":
		runMockWeatherServer()
	case "smoke":
		baseURL := defaultProxyURL
		if len(os.Args) > 2 {
			baseURL = os.Args[2]
		}
		if !runSmokeChecks(baseURL) {
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Integration Test Runner")
	fmt.Println("Usage: go run ./cmd/integration-runner <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run          - Run integration tests (no external services needed)")
	fmt.Println("  mock         - Start the mock OpenWeatherMap server on :8080")
	fmt.Println("  smoke [url]  - Check a running proxy, default " + defaultProxyURL)
}

func runIntegrationTests() {
	fmt.Println("Running integration tests...")

	cmd := exec.Command("go", "test", "-v", "-race", "-timeout=5m", "./tests/integration/...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Printf("Integration tests failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Integration tests completed successfully")
}

// runMockWeatherServer starts the mock upstream. Point the proxy at it with
// OPENWEATHER_API_BASE_URL=http://localhost:8080 and any OPENWEATHER_API_KEY.
func runMockWeatherServer() {
	fmt.Println("Starting mock OpenWeatherMap server...")

	tidy := exec.Command("go", "mod", "tidy")
	tidy.Dir = "tests/mocks/weather-server"
	tidy.Stdout = os.Stdout
	tidy.Stderr = os.Stderr
	if err := tidy.Run(); err != nil {
		log.Printf("Failed to run go mod tidy in mock weather server: %v", err)
		os.Exit(1)
	}

	cmd := exec.Command("go", "run", ".")
	cmd.Dir = "tests/mocks/weather-server"
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Printf("Mock weather server exited: %v", err)
		os.Exit(1)
	}
}

type smokeCheck struct {
	path       string
	wantStatus int
	wantCached *bool
}

func runSmokeChecks(baseURL string) bool {
	cached := true
	checks := []smokeCheck{
		{path: "/api/health", wantStatus: http.StatusOK},
		{path: "/api/weather", wantStatus: http.StatusBadRequest},
		{path: "/api/weather?q=London", wantStatus: http.StatusOK},
		{path: "/api/weather?q=London", wantStatus: http.StatusOK, wantCached: &cached},
		{path: "/api/forecast?lat=51.51&lon=-0.13", wantStatus: http.StatusOK},
		{path: "/api/forecast?lat=51.51&lon=-0.13", wantStatus: http.StatusOK, wantCached: &cached},
		{path: "/metrics", wantStatus: http.StatusOK},
	}

	client := &http.Client{Timeout: 15 * time.Second}
	passed := true
	for _, check := range checks {
		if err := check.run(client, baseURL); err != nil {
			fmt.Printf("FAIL %s: %v\n", check.path, err)
			passed = false
			continue
		}
		fmt.Printf("ok   %s\n", check.path)
	}
	return passed
}

func (c smokeCheck) run(client *http.Client, baseURL string) error {
	resp, err := client.Get(baseURL + c.path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != c.wantStatus {
		return fmt.Errorf("status %d, want %d", resp.StatusCode, c.wantStatus)
	}
	if c.wantCached == nil {
		return nil
	}

	var body struct {
		Cached bool `json:"cached"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if body.Cached != *c.wantCached {
		return fmt.Errorf("cached=%t, want %t", body.Cached, *c.wantCached)
	}
	return nil
}

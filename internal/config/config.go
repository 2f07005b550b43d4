package config

import (
	"fmt"
	"os"
	"time"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// DatabaseDSN selects the history backend: a user:pass@tcp(...)/db DSN
	// opens MySQL, anything else is a SQLite path.
	DatabaseDSN string

	// HTTPTimeout applies to outbound provider calls.
	HTTPTimeout time.Duration

	// Provider reachability probe; disabled when ProbeCity is empty.
	ProbeCity     string
	ProbeInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.DatabaseDSN = getenvDefault("DATABASE_DSN", "weather-search.db")
	cfg.Port = getenvDefault("PORT", "8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.ProbeCity = os.Getenv("PROBE_CITY")

	probeIntervalStr := getenvDefault("PROBE_INTERVAL", "15m")
	probeInterval, err := time.ParseDuration(probeIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_INTERVAL: %w", err)
	}
	cfg.ProbeInterval = probeInterval

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

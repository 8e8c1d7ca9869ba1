// Package geocode provides a client for the Open-Meteo geocoding API.
package geocode

import (
	"os"
	"time"
)

// DefaultBaseURL is the public Open-Meteo geocoding endpoint. The API is
// free for non-commercial use and needs no key.
const DefaultBaseURL = "https://geocoding-api.open-meteo.com"

// Config holds configuration for the geocoding API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://geocoding-api.open-meteo.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads geocoding configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("GEOCODE_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}

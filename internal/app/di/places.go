package di

import (
	"natal_backend/internal/platform/externalapi/geocode"
	infrahttp "natal_backend/internal/platform/http"
)

// NewPlaceResolver creates a fully configured GeocodePlaces client with config and HTTP client.
func NewPlaceResolver() *geocode.GeocodePlaces {
	cfg := geocode.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)

	return geocode.NewGeocodePlaces(cfg, httpClient)
}

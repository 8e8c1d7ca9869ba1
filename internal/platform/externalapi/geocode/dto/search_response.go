// Package dto defines data transfer objects for the Open-Meteo geocoding API responses.
package dto

// SearchResponse represents the JSON response from the Open-Meteo geocoding search endpoint.
type SearchResponse struct {
	Results []struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		CountryCode string  `json:"country_code"`
		Country     string  `json:"country"`
		Timezone    string  `json:"timezone"`
	} `json:"results"`
	GenerationTimeMS float64 `json:"generationtime_ms"`
}

package geocoding

import (
	"encoding/json"
	"net/url"

	"github.com/UnknownOlympus/geosheet/internal/models"
)

// Nominatim endpoints. MapQuest hosts the same API behind an application key.
const (
	NominatimBaseURL = "https://nominatim.openstreetmap.org/search"
	MapQuestBaseURL  = "https://open.mapquestapi.com/nominatim/v1/search.php"
)

// NominatimAdapter implements the Adapter interface for OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimAdapter struct {
	baseURL string
}

// MapQuestAdapter talks to the Nominatim API hosted by MapQuest. It answers in the
// Nominatim format, so parsing is shared.
type MapQuestAdapter struct {
	baseURL string
	apiKey  string
}

// nominatimResponse represents one candidate of the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat  string `json:"lat"`  // Latitude as string
	Lon  string `json:"lon"`  // Longitude as string
	Type string `json:"type"` // OSM feature type, e.g. "house"
}

// NewNominatimAdapter creates an adapter for the given Nominatim search endpoint.
// An empty baseURL selects the public endpoint.
func NewNominatimAdapter(baseURL string) *NominatimAdapter {
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}

	return &NominatimAdapter{baseURL: baseURL}
}

// NewMapQuestAdapter creates an adapter for the MapQuest hosted Nominatim endpoint.
func NewMapQuestAdapter(baseURL, apiKey string) *MapQuestAdapter {
	if baseURL == "" {
		baseURL = MapQuestBaseURL
	}

	return &MapQuestAdapter{baseURL: baseURL, apiKey: apiKey}
}

// Query builds the search URL asking for a single JSON candidate.
func (na *NominatimAdapter) Query(escapedAddress string) string {
	return na.baseURL + "?format=json&limit=1&q=" + escapedAddress
}

// Parse extracts lon, lat and the OSM type of the first candidate.
func (na *NominatimAdapter) Parse(body []byte) models.GeocodeResult {
	return parseNominatim(body)
}

// Query builds the search URL including the application key.
func (ma *MapQuestAdapter) Query(escapedAddress string) string {
	return ma.baseURL + "?key=" + url.QueryEscape(ma.apiKey) + "&format=json&limit=1&q=" + escapedAddress
}

// Parse extracts lon, lat and the OSM type of the first candidate.
func (ma *MapQuestAdapter) Parse(body []byte) models.GeocodeResult {
	return parseNominatim(body)
}

func parseNominatim(body []byte) models.GeocodeResult {
	var results []nominatimResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return models.FailedResult()
	}

	if len(results) == 0 {
		return models.FailedResult()
	}

	first := results[0]
	if first.Lon == "" || first.Lat == "" || first.Type == "" {
		return models.FailedResult()
	}

	return models.GeocodeResult{Longitude: first.Lon, Latitude: first.Lat, Accuracy: first.Type}
}

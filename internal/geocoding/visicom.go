package geocoding

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/geosheet/internal/models"
)

// VisicomBaseURL -- Visicom API base URL.
const VisicomBaseURL = "https://api.visicom.ua/data-api/5.0/uk/geocode.json"

// VisicomAdapter implements the Adapter interface for the Visicom Data API.
type VisicomAdapter struct {
	baseURL string
	apiKey  string
}

// Visicom API response (simplified for geocoding use-case).
type visicomResponse struct {
	Properties struct {
		Categories string `json:"categories"` // e.g. adr_address, adm_settlement
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geo_centroid"`
}

// NewVisicomAdapter creates a new Visicom adapter. An empty baseURL selects VisicomBaseURL.
func NewVisicomAdapter(baseURL, apiKey string) *VisicomAdapter {
	if baseURL == "" {
		baseURL = VisicomBaseURL
	}

	return &VisicomAdapter{baseURL: baseURL, apiKey: apiKey}
}

// Query builds the geocode URL for a single best match.
func (va *VisicomAdapter) Query(escapedAddress string) string {
	return va.baseURL + "?text=" + escapedAddress + "&limit=1&key=" + url.QueryEscape(va.apiKey)
}

// Parse extracts the centroid of the returned feature. Its category is used as accuracy.
func (va *VisicomAdapter) Parse(body []byte) models.GeocodeResult {
	const coordsListLength = 2

	var result visicomResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return models.FailedResult()
	}

	coords := result.Geometry.Coordinates
	if len(coords) != coordsListLength || result.Properties.Categories == "" {
		return models.FailedResult()
	}

	return models.GeocodeResult{
		Longitude: strconv.FormatFloat(coords[0], 'f', -1, 64),
		Latitude:  strconv.FormatFloat(coords[1], 'f', -1, 64),
		Accuracy:  result.Properties.Categories,
	}
}

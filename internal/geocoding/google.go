package geocoding

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/geosheet/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleBaseURL is the Google Maps Geocoding API JSON endpoint.
const GoogleBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// googleStatusOK is the status the Geocoding API reports when results are present.
const googleStatusOK = "OK"

// GoogleAdapter implements the Adapter interface for the Google Maps Geocoding API.
// Responses are decoded into the result types of the official client library.
type GoogleAdapter struct {
	baseURL string
	apiKey  string
}

// googleResponse is the envelope of a Geocoding API answer.
type googleResponse struct {
	Results []maps.GeocodingResult `json:"results"`
	Status  string                 `json:"status"`
}

// NewGoogleAdapter creates an adapter for the Google Maps Geocoding API.
// An empty baseURL selects the public endpoint.
func NewGoogleAdapter(baseURL, apiKey string) *GoogleAdapter {
	if baseURL == "" {
		baseURL = GoogleBaseURL
	}

	return &GoogleAdapter{baseURL: baseURL, apiKey: apiKey}
}

// Query builds the geocode URL for the address and API key.
func (ga *GoogleAdapter) Query(escapedAddress string) string {
	return ga.baseURL + "?address=" + escapedAddress + "&key=" + url.QueryEscape(ga.apiKey)
}

// Parse extracts the location of the first result. The accuracy label is the
// result's location_type (ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE).
func (ga *GoogleAdapter) Parse(body []byte) models.GeocodeResult {
	var resp googleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.FailedResult()
	}

	if resp.Status != googleStatusOK || len(resp.Results) == 0 {
		return models.FailedResult()
	}

	geometry := resp.Results[0].Geometry
	if geometry.LocationType == "" {
		return models.FailedResult()
	}

	return models.GeocodeResult{
		Longitude: strconv.FormatFloat(geometry.Location.Lng, 'f', -1, 64),
		Latitude:  strconv.FormatFloat(geometry.Location.Lat, 'f', -1, 64),
		Accuracy:  geometry.LocationType,
	}
}

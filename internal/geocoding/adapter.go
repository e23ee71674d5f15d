package geocoding

import (
	"net/http"

	"github.com/UnknownOlympus/geosheet/internal/models"
)

// Adapter translates between a geocoding provider's HTTP API and GeocodeResult.
//
// Query receives an address that is already URI-escaped and must not escape it again.
// Parse never fails: any body it cannot understand yields models.FailedResult().
type Adapter interface {
	Query(escapedAddress string) string
	Parse(body []byte) models.GeocodeResult
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

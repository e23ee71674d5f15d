package geocoding_test

import (
	"net/url"
	"testing"

	"github.com/UnknownOlympus/geosheet/internal/geocoding"
	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleAdapter(t *testing.T) {
	adapter := geocoding.NewGoogleAdapter("", "test-api-key")

	t.Run("query", func(t *testing.T) {
		parsed, err := url.Parse(adapter.Query(url.QueryEscape("1600 Amphitheatre Parkway, Mountain View, CA")))

		require.NoError(t, err)
		assert.Equal(t, "maps.googleapis.com", parsed.Host)
		assert.Equal(t, "1600 Amphitheatre Parkway, Mountain View, CA", parsed.Query().Get("address"))
		assert.Equal(t, "test-api-key", parsed.Query().Get("key"))
	})

	t.Run("successfull geocoding", func(t *testing.T) {
		body := `{"status":"OK","results":[{"formatted_address":"1600 Amphitheatre Pkwy",
			"geometry":{"location":{"lat":37.42,"lng":-122.08},"location_type":"ROOFTOP"}}]}`

		result := adapter.Parse([]byte(body))

		assert.Equal(t, models.GeocodeResult{Longitude: "-122.08", Latitude: "37.42", Accuracy: "ROOFTOP"}, result)
	})

	t.Run("zero results", func(t *testing.T) {
		result := adapter.Parse([]byte(`{"status":"ZERO_RESULTS","results":[]}`))

		assert.True(t, result.Failed())
	})

	t.Run("denied request", func(t *testing.T) {
		result := adapter.Parse([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))

		assert.Equal(t, models.FailedResult(), result)
	})

	t.Run("missing location type", func(t *testing.T) {
		result := adapter.Parse([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":1,"lng":2}}}]}`))

		assert.True(t, result.Failed())
	})

	t.Run("malformed body", func(t *testing.T) {
		assert.True(t, adapter.Parse([]byte(`<html>`)).Failed())
	})
}

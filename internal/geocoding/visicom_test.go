package geocoding_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/UnknownOlympus/geosheet/internal/geocoding"
	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisicomAdapter_Query(t *testing.T) {
	adapter := geocoding.NewVisicomAdapter("", "test-api-key")

	reqURL := adapter.Query(url.QueryEscape("м. Київ, вул. Хрещатик, 1"))

	assert.True(t, strings.HasPrefix(reqURL, geocoding.VisicomBaseURL))
	parsed, err := url.Parse(reqURL)
	require.NoError(t, err)
	assert.Equal(t, "м. Київ, вул. Хрещатик, 1", parsed.Query().Get("text"))
	assert.Equal(t, "test-api-key", parsed.Query().Get("key"))
	assert.Equal(t, "1", parsed.Query().Get("limit"))
}

func TestVisicomAdapter_Parse(t *testing.T) {
	adapter := geocoding.NewVisicomAdapter("", "test-api-key")

	t.Run("successfull geocoding", func(t *testing.T) {
		body := `{"type":"Feature","properties":{"categories":"adr_address"},
			"geo_centroid":{"type":"Point","coordinates":[30.5234,50.4501]}}`

		result := adapter.Parse([]byte(body))

		assert.Equal(t, models.GeocodeResult{Longitude: "30.5234", Latitude: "50.4501", Accuracy: "adr_address"}, result)
	})

	t.Run("empty response", func(t *testing.T) {
		assert.Equal(t, models.FailedResult(), adapter.Parse([]byte(`{}`)))
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		body := `{"properties":{"categories":"adr_address"},"geo_centroid":{"coordinates":[30.5]}}`

		assert.True(t, adapter.Parse([]byte(body)).Failed())
	})

	t.Run("missing category", func(t *testing.T) {
		body := `{"geo_centroid":{"coordinates":[30.5,50.4]}}`

		assert.True(t, adapter.Parse([]byte(body)).Failed())
	})
}

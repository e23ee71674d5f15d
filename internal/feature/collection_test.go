package feature_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/geosheet/internal/feature"
	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/UnknownOlympus/geosheet/internal/sheet"
	"github.com/UnknownOlympus/geosheet/test/mocks"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	mapping := models.FieldMapping{ID: "placeName", Latitude: "latitude", Longitude: "longitude"}

	t.Run("keeps only rows with id and coordinates", func(t *testing.T) {
		store := sheet.NewMemoryStore([][]string{
			{"Place Name", "Latitude", "Longitude", "Opening Hours"},
			{"Cafe", "40.7128", "-74.006", "9-17"},
			{"", "1", "2", ""},
			{"Bakery", "unknown", "2", ""},
			{"Kiosk", "51.5", "-0.12"},
		})

		collection, err := feature.Collect(ctx, logger, store, mapping)
		require.NoError(t, err)

		assert.Equal(t, "FeatureCollection", collection.Type)
		require.Len(t, collection.Features, 2)
		assert.Equal(t, "Cafe", collection.Features[0].ID)
		assert.Equal(t, "9-17", collection.Features[0].Properties["openingHours"])
		assert.Equal(t, "Kiosk", collection.Features[1].ID)
		assert.Equal(t, orb.Point{-0.12, 51.5}, collection.Features[1].Geometry)
	})

	t.Run("empty table", func(t *testing.T) {
		collection, err := feature.Collect(ctx, logger, sheet.NewMemoryStore(nil), mapping)
		require.NoError(t, err)
		assert.NotNil(t, collection.Features)
		assert.Empty(t, collection.Features)
	})

	t.Run("header read failure", func(t *testing.T) {
		store := mocks.NewStore(t)
		store.On("Headers", mock.Anything).Return(nil, assert.AnError)

		_, err := feature.Collect(ctx, logger, store, mapping)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to read headers")
	})

	t.Run("row read failure", func(t *testing.T) {
		store := mocks.NewStore(t)
		store.On("Headers", mock.Anything).Return([]string{"Place Name"}, nil)
		store.On("Values", mock.Anything, models.Range{FirstRow: 2, FirstCol: 1, LastCol: 1}).
			Return(nil, assert.AnError)

		_, err := feature.Collect(ctx, logger, store, mapping)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to read rows")
	})
}

func TestEncode(t *testing.T) {
	t.Run("writes geojson", func(t *testing.T) {
		cafe := geojson.NewFeature(orb.Point{-74.006, 40.7128})
		cafe.ID = "Cafe"
		cafe.Properties["placeName"] = "Cafe"
		collection := geojson.NewFeatureCollection().Append(cafe)

		var buf bytes.Buffer
		require.NoError(t, feature.Encode(&buf, collection))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "FeatureCollection", decoded["type"])

		features, ok := decoded["features"].([]any)
		require.True(t, ok)
		require.Len(t, features, 1)
		first, ok := features[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Cafe", first["id"])
		assert.Equal(t, map[string]any{"type": "Point", "coordinates": []any{-74.006, 40.7128}}, first["geometry"])
		assert.Equal(t, map[string]any{"placeName": "Cafe"}, first["properties"])
	})

	t.Run("empty collection encodes an empty array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, feature.Encode(&buf, geojson.NewFeatureCollection()))
		assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, buf.String())
	})
}

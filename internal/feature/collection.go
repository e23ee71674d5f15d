package feature

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/UnknownOlympus/geosheet/internal/sheet"
	"github.com/paulmach/orb/geojson"
)

// Collect builds a feature from every data row of store. Rows without an id or
// valid coordinates are left out.
func Collect(
	ctx context.Context,
	log *slog.Logger,
	store sheet.Store,
	mapping models.FieldMapping,
) (*geojson.FeatureCollection, error) {
	headers, err := store.Headers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}

	collection := geojson.NewFeatureCollection()
	if len(headers) == 0 {
		return collection, nil
	}

	rows, err := store.Values(ctx, models.Range{FirstRow: sheet.HeaderRow + 1, FirstCol: 1, LastCol: len(headers)})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	keys := NormalizeAll(headers)
	for i, row := range rows {
		feature := Build(row, keys, mapping)
		if feature == nil {
			log.DebugContext(ctx, "Row left out of the collection", "row", sheet.HeaderRow+1+i)
			continue
		}
		collection.Append(feature)
	}

	log.InfoContext(ctx, "Feature collection built", "rows", len(rows), "features", len(collection.Features))

	return collection, nil
}

// Encode writes collection as indented GeoJSON.
func Encode(w io.Writer, collection *geojson.FeatureCollection) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(collection); err != nil {
		return fmt.Errorf("failed to encode feature collection: %w", err)
	}

	return nil
}

package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/UnknownOlympus/geosheet/internal/models"
)

// outputColumns is the number of columns a geocoding pass writes.
const outputColumns = 3

// ColumnRegistry locates the longitude, latitude and accuracy columns of a table,
// appending them when they are not all present.
type ColumnRegistry struct {
	store   Store
	columns models.CanonicalColumns
	log     *slog.Logger
}

// NewColumnRegistry creates a registry for the given output column labels.
func NewColumnRegistry(store Store, columns models.CanonicalColumns, log *slog.Logger) *ColumnRegistry {
	return &ColumnRegistry{store: store, columns: columns, log: log}
}

// Resolve returns the positions of the output columns.
//
// When all three labels appear in headers their positions are returned and the
// table is left alone. Otherwise three new columns are appended after the last
// header and labelled; a partial match is ignored so columns are never mixed
// between an old and a new allocation.
//
// A label that appears more than once resolves to its last occurrence, which is
// where an allocation following a partial match put it.
func (cr *ColumnRegistry) Resolve(ctx context.Context, headers []string) (models.ColumnSlots, error) {
	lon := lastIndex(headers, cr.columns.Longitude)
	lat := lastIndex(headers, cr.columns.Latitude)
	acc := lastIndex(headers, cr.columns.Accuracy)

	if lon >= 0 && lat >= 0 && acc >= 0 {
		slots := models.ColumnSlots{Longitude: lon + 1, Latitude: lat + 1, Accuracy: acc + 1}
		cr.log.DebugContext(ctx, "Output columns found", "slots", slots)
		return slots, nil
	}

	if lon >= 0 || lat >= 0 || acc >= 0 {
		cr.log.WarnContext(ctx, "Only some output columns exist, allocating a fresh set",
			"longitude", lon+1, "latitude", lat+1, "accuracy", acc+1)
	}

	last := len(headers)
	if err := cr.store.InsertColumnsAfter(ctx, last, outputColumns); err != nil {
		return models.ColumnSlots{}, fmt.Errorf("failed to insert output columns: %w", err)
	}

	labels := []string{cr.columns.Longitude, cr.columns.Latitude, cr.columns.Accuracy}
	for i, label := range labels {
		if err := cr.store.SetCellValue(ctx, HeaderRow, last+1+i, label); err != nil {
			return models.ColumnSlots{}, fmt.Errorf("failed to label output column %q: %w", label, err)
		}
	}

	slots := models.ColumnSlots{Longitude: last + 1, Latitude: last + 2, Accuracy: last + 3}
	cr.log.InfoContext(ctx, "Output columns allocated", "slots", slots)

	return slots, nil
}

func lastIndex(headers []string, label string) int {
	for i, header := range slices.Backward(headers) {
		if header == label {
			return i
		}
	}

	return -1
}

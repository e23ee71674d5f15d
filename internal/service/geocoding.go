package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/geosheet/internal/geocoding"
	"github.com/UnknownOlympus/geosheet/internal/metrics"
	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/UnknownOlympus/geosheet/internal/sheet"
)

// Fetcher geocodes one address. *geocoding.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, address string, adapter geocoding.Adapter) (*models.GeocodeResult, error)
}

// Report summarizes one geocoding pass.
type Report struct {
	Processed   int // Rows that received a result, including the failure sentinel.
	Skipped     int // Rows already geocoded or without an address.
	Failed      int // Rows whose provider answer could not be parsed.
	GaveUp      int // Rows left untouched because the provider never answered.
	WriteErrors int // Rows whose result could not be written back.
}

// GeocodingService geocodes the addresses of a table range and writes the
// results into the output columns of the same rows.
type GeocodingService struct {
	log        *slog.Logger          // Logger for logging service activities
	store      sheet.Store           // Table holding addresses and results
	registry   *sheet.ColumnRegistry // Locates or allocates the output columns
	fetcher    Fetcher               // Retrying provider client
	adapter    geocoding.Adapter     // Provider request and response format
	metrics    *metrics.Metrics      // Metrics for tracking service performance
	addrPrefix string                // Address prefix for more accurate geocoding (indicating country, city, etc.)
}

// NewGeocodingService creates a new instance of GeocodingService.
func NewGeocodingService(
	log *slog.Logger,
	store sheet.Store,
	registry *sheet.ColumnRegistry,
	fetcher Fetcher,
	adapter geocoding.Adapter,
	metrics *metrics.Metrics,
	addressPrefix string,
) *GeocodingService {
	return &GeocodingService{
		log:        log,
		store:      store,
		registry:   registry,
		fetcher:    fetcher,
		adapter:    adapter,
		metrics:    metrics,
		addrPrefix: addressPrefix,
	}
}

// Run geocodes every row of selection, one row at a time. The selected cells of a
// row are joined with spaces to form its address. Rows whose output cells already
// hold anything are skipped, so running twice over the same range sends no
// requests the second time.
//
// Only setup faults and cancellation end the run early; per-row faults are
// logged and counted in the report.
func (gs *GeocodingService) Run(ctx context.Context, selection models.Range) (Report, error) {
	var report Report

	headers, err := gs.store.Headers(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to read headers: %w", err)
	}

	if selection.LastCol == 0 {
		selection.LastCol = len(headers)
	}
	if selection.FirstRow < 1 || selection.FirstCol < 1 || selection.LastCol < selection.FirstCol {
		return report, fmt.Errorf("%w: %+v", sheet.ErrInvalidRange, selection)
	}

	slots, err := gs.registry.Resolve(ctx, headers)
	if err != nil {
		return report, err
	}

	// the header row is never geocoded
	if selection.FirstRow == sheet.HeaderRow {
		selection.FirstRow++
	}

	width := max(selection.LastCol, slots.Longitude, slots.Latitude, slots.Accuracy)
	rows, err := gs.store.Values(ctx, models.Range{
		FirstRow: selection.FirstRow,
		LastRow:  selection.LastRow,
		FirstCol: 1,
		LastCol:  width,
	})
	if err != nil {
		return report, fmt.Errorf("failed to read rows: %w", err)
	}

	gs.log.InfoContext(ctx, "Geocoding pass started", "rows", len(rows), "first_row", selection.FirstRow)

	for i, row := range rows {
		if err = ctx.Err(); err != nil {
			gs.log.WarnContext(ctx, "Geocoding pass interrupted", "row", selection.FirstRow+i)
			return report, err
		}

		rowNum := selection.FirstRow + i
		if err = gs.processRow(ctx, rowNum, row, selection, slots, &report); err != nil {
			return report, err
		}
	}

	gs.log.InfoContext(ctx, "Geocoding pass finished",
		"processed", report.Processed,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"gave_up", report.GaveUp,
		"write_errors", report.WriteErrors,
	)

	return report, nil
}

// processRow handles one row. It returns an error only when ctx is cancelled.
func (gs *GeocodingService) processRow(
	ctx context.Context,
	rowNum int,
	row []string,
	selection models.Range,
	slots models.ColumnSlots,
	report *Report,
) error {
	if row[slots.Longitude-1] != "" || row[slots.Latitude-1] != "" || row[slots.Accuracy-1] != "" {
		gs.log.DebugContext(ctx, "Row already geocoded", "row", rowNum)
		gs.skip(report)
		return nil
	}

	address := gs.address(row, selection, slots)
	if strings.TrimSpace(address) == "" {
		gs.log.DebugContext(ctx, "Row has no address", "row", rowNum)
		gs.skip(report)
		return nil
	}
	address = gs.addrPrefix + address

	result, err := gs.fetcher.Fetch(ctx, address, gs.adapter)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		gs.log.ErrorContext(ctx, "Failed to geocode", "row", rowNum, "address", address, "error", err)
		gs.metrics.RowsProcessed.WithLabelValues(metrics.StatusGaveUp).Inc()
		report.GaveUp++
		return nil
	}

	values := []struct {
		col   int
		value string
	}{
		{slots.Longitude, result.Longitude},
		{slots.Latitude, result.Latitude},
		{slots.Accuracy, result.Accuracy},
	}
	for i, cell := range values {
		if err = gs.store.SetCellValue(ctx, rowNum, cell.col, cell.value); err != nil {
			gs.log.ErrorContext(ctx, "Failed to write result", "row", rowNum, "column", cell.col, "error", err)
			// a half written row would be skipped by every later run
			for _, written := range values[:i] {
				gs.clearCell(ctx, rowNum, written.col)
			}
			gs.metrics.RowsProcessed.WithLabelValues(metrics.StatusWriteError).Inc()
			report.WriteErrors++
			return nil
		}
	}

	report.Processed++
	if result.Failed() {
		report.Failed++
		gs.metrics.RowsProcessed.WithLabelValues(metrics.StatusFailure).Inc()
	} else {
		gs.metrics.RowsProcessed.WithLabelValues(metrics.StatusSuccess).Inc()
	}
	gs.log.DebugContext(ctx, "Row geocoded", "row", rowNum, "accuracy", result.Accuracy)

	return nil
}

// address joins the selected cells of row, leaving out the output columns.
func (gs *GeocodingService) address(row []string, selection models.Range, slots models.ColumnSlots) string {
	parts := make([]string, 0, selection.LastCol-selection.FirstCol+1)
	for col := selection.FirstCol; col <= selection.LastCol; col++ {
		if col == slots.Longitude || col == slots.Latitude || col == slots.Accuracy {
			continue
		}
		parts = append(parts, row[col-1])
	}

	return strings.Join(parts, " ")
}

func (gs *GeocodingService) clearCell(ctx context.Context, rowNum, col int) {
	if err := gs.store.SetCellValue(ctx, rowNum, col, ""); err != nil {
		gs.log.ErrorContext(ctx, "Failed to clear partial result", "row", rowNum, "column", col, "error", err)
	}
}

func (gs *GeocodingService) skip(report *Report) {
	report.Skipped++
	gs.metrics.RowsProcessed.WithLabelValues(metrics.StatusSkipped).Inc()
}

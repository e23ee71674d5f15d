package sheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("worksheet not found")

// ExcelStore exposes one worksheet of an .xlsx workbook as a Store.
type ExcelStore struct {
	file      *excelize.File
	sheetName string
}

// OpenExcelStore opens the workbook at path. An empty sheetName selects the active sheet.
func OpenExcelStore(path, sheetName string) (*ExcelStore, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	store, err := NewExcelStore(file, sheetName)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return store, nil
}

// NewExcelStore wraps an already opened workbook.
func NewExcelStore(file *excelize.File, sheetName string) (*ExcelStore, error) {
	if sheetName == "" {
		sheetName = file.GetSheetName(file.GetActiveSheetIndex())
	}

	idx, err := file.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	return &ExcelStore{file: file, sheetName: sheetName}, nil
}

// SheetName returns the worksheet the store reads and writes.
func (es *ExcelStore) SheetName() string {
	return es.sheetName
}

// SaveAs writes the workbook to path.
func (es *ExcelStore) SaveAs(path string) error {
	if err := es.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// Close releases the workbook.
func (es *ExcelStore) Close() error {
	return es.file.Close()
}

// Headers returns the first row of the worksheet.
func (es *ExcelStore) Headers(_ context.Context) ([]string, error) {
	rows, err := es.file.GetRows(es.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return []string{}, nil
	}

	return rows[0], nil
}

// Values returns the formatted cell values of rng.
func (es *ExcelStore) Values(_ context.Context, rng models.Range) ([][]string, error) {
	rows, err := es.file.GetRows(es.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	bounded, err := Bound(rng, len(rows), width)
	if err != nil {
		return nil, err
	}

	return Window(rows, bounded), nil
}

// SetCellValue writes value into the cell at (row, col).
func (es *ExcelStore) SetCellValue(_ context.Context, row, col int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	if err = es.file.SetCellValue(es.sheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}

	return nil
}

// InsertColumnsAfter inserts count columns to the right of col.
func (es *ExcelStore) InsertColumnsAfter(_ context.Context, col, count int) error {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	if err = es.file.InsertCols(es.sheetName, name, count); err != nil {
		return fmt.Errorf("failed to insert columns at %s: %w", name, err)
	}

	return nil
}

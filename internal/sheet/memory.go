package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/UnknownOlympus/geosheet/internal/models"
)

// MemoryStore keeps a table in memory. It backs CSV files and tests.
type MemoryStore struct {
	grid [][]string
}

// NewMemoryStore creates a store holding a copy of grid; grid[0] is the header row.
func NewMemoryStore(grid [][]string) *MemoryStore {
	copied := make([][]string, len(grid))
	for i, row := range grid {
		copied[i] = slices.Clone(row)
	}

	return &MemoryStore{grid: copied}
}

// LoadCSV reads a whole CSV document into a MemoryStore. Rows may have different lengths.
func LoadCSV(r io.Reader) (*MemoryStore, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return &MemoryStore{grid: records}, nil
}

// WriteCSV writes the table as CSV, padding every row to the table width.
func (ms *MemoryStore) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	width := ms.width()
	for _, row := range ms.grid {
		padded := make([]string, width)
		copy(padded, row)
		if err := writer.Write(padded); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}

// Grid returns a copy of the table.
func (ms *MemoryStore) Grid() [][]string {
	return NewMemoryStore(ms.grid).grid
}

// Headers returns the first row.
func (ms *MemoryStore) Headers(_ context.Context) ([]string, error) {
	if len(ms.grid) == 0 {
		return []string{}, nil
	}

	return slices.Clone(ms.grid[0]), nil
}

// Values returns the cells of rng.
func (ms *MemoryStore) Values(_ context.Context, rng models.Range) ([][]string, error) {
	bounded, err := Bound(rng, len(ms.grid), ms.width())
	if err != nil {
		return nil, err
	}

	return Window(ms.grid, bounded), nil
}

// SetCellValue overwrites one cell, growing the table when needed.
func (ms *MemoryStore) SetCellValue(_ context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("%w: cell (%d, %d)", ErrInvalidRange, row, col)
	}

	for len(ms.grid) < row {
		ms.grid = append(ms.grid, []string{})
	}
	for len(ms.grid[row-1]) < col {
		ms.grid[row-1] = append(ms.grid[row-1], "")
	}
	ms.grid[row-1][col-1] = value

	return nil
}

// InsertColumnsAfter shifts cells right of col by count columns.
func (ms *MemoryStore) InsertColumnsAfter(_ context.Context, col, count int) error {
	if col < 0 || count < 1 {
		return fmt.Errorf("%w: insert %d columns after %d", ErrInvalidRange, count, col)
	}

	for i, row := range ms.grid {
		if len(row) > col {
			ms.grid[i] = slices.Insert(row, col, make([]string, count)...)
		}
	}

	return nil
}

func (ms *MemoryStore) width() int {
	width := 0
	for _, row := range ms.grid {
		width = max(width, len(row))
	}

	return width
}

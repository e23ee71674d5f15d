// Package sheet provides the tabular stores geocoding runs read from and write to,
// and the registry that places the output columns.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/xuri/excelize/v2"
)

// HeaderRow is the row holding column labels in every store.
const HeaderRow = 1

// ErrInvalidRange is returned for ranges that do not start at a positive row and column.
var ErrInvalidRange = errors.New("invalid cell range")

// Store is a grid of text cells addressed by 1-based (row, column) positions.
// Row HeaderRow holds the column labels.
type Store interface {
	// Headers returns the labels of row 1, up to the last populated column.
	Headers(ctx context.Context) ([]string, error)
	// Values returns the cells of rng; every returned row has the range's width.
	Values(ctx context.Context, rng models.Range) ([][]string, error)
	// SetCellValue overwrites one cell.
	SetCellValue(ctx context.Context, row, col int, value string) error
	// InsertColumnsAfter inserts count empty columns to the right of col.
	InsertColumnsAfter(ctx context.Context, col, count int) error
}

// Bound resolves open ends of rng against a table of rowCount rows and colCount
// columns. A range whose LastRow precedes FirstRow is returned as is and selects nothing.
func Bound(rng models.Range, rowCount, colCount int) (models.Range, error) {
	if rng.FirstRow < 1 || rng.FirstCol < 1 {
		return models.Range{}, fmt.Errorf("%w: %+v", ErrInvalidRange, rng)
	}
	if rng.LastRow == 0 {
		rng.LastRow = rowCount
	}
	if rng.LastCol == 0 {
		rng.LastCol = colCount
	}
	if rng.LastCol < rng.FirstCol {
		return models.Range{}, fmt.Errorf("%w: last column %d before first column %d",
			ErrInvalidRange, rng.LastCol, rng.FirstCol)
	}

	return rng, nil
}

// Window cuts rng out of rows, padding short rows with empty cells.
func Window(rows [][]string, rng models.Range) [][]string {
	if rng.LastRow < rng.FirstRow {
		return [][]string{}
	}

	width := rng.LastCol - rng.FirstCol + 1
	out := make([][]string, 0, rng.LastRow-rng.FirstRow+1)
	for rowIdx := rng.FirstRow; rowIdx <= rng.LastRow; rowIdx++ {
		cells := make([]string, width)
		if rowIdx-1 < len(rows) {
			src := rows[rowIdx-1]
			for col := rng.FirstCol; col <= rng.LastCol && col-1 < len(src); col++ {
				cells[col-rng.FirstCol] = src[col-1]
			}
		}
		out = append(out, cells)
	}

	return out
}

// ParseRange reads an A1 style range such as "B2:D40", "B:D", "B2:D" or "C".
// Omitted rows start at 1 and run to the end of the table.
func ParseRange(ref string) (models.Range, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Range{}, fmt.Errorf("%w: empty reference", ErrInvalidRange)
	}

	first, last, found := strings.Cut(ref, ":")
	if !found {
		last = first
	}

	firstCol, firstRow, err := parseRef(first)
	if err != nil {
		return models.Range{}, err
	}
	lastCol, lastRow, err := parseRef(last)
	if err != nil {
		return models.Range{}, err
	}

	if firstRow == 0 {
		firstRow = HeaderRow
	}

	return models.Range{FirstRow: firstRow, LastRow: lastRow, FirstCol: firstCol, LastCol: lastCol}, nil
}

// parseRef splits "B12" into (2, 12) and "B" into (2, 0).
func parseRef(ref string) (int, int, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	if ref != "" && strings.IndexFunc(ref, isDigit) == -1 {
		col, err := excelize.ColumnNameToNumber(ref)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrInvalidRange, err)
		}
		return col, 0, nil
	}

	colName, row, err := excelize.SplitCellName(ref)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	col, err := excelize.ColumnNameToNumber(colName)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	return col, row, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

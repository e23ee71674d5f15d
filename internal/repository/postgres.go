package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/UnknownOlympus/geosheet/internal/sheet"
	"github.com/jackc/pgx/v5/pgconn"
)

const headersQuery = `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_schema = $1 AND table_name = $2
	ORDER BY ordinal_position;
`

// Headers returns the column names of the table in ordinal order.
func (ts *TableStore) Headers(ctx context.Context) ([]string, error) {
	rows, err := ts.db.Query(ctx, headersQuery, ts.schema, ts.table)
	if err != nil {
		return nil, fmt.Errorf("failed to query table columns: %w", err)
	}
	defer rows.Close()

	headers := []string{}
	for rows.Next() {
		var name string
		if errScan := rows.Scan(&name); errScan != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", errScan)
		}
		headers = append(headers, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return headers, nil
}

// Values reads the whole table as text and cuts rng out of it. NULL reads as "".
func (ts *TableStore) Values(ctx context.Context, rng models.Range) ([][]string, error) {
	headers, err := ts.Headers(ctx)
	if err != nil {
		return nil, err
	}

	grid := [][]string{headers}
	if len(headers) > 0 {
		rows, keys, errRead := ts.readRows(ctx, headers)
		if errRead != nil {
			return nil, errRead
		}
		grid = append(grid, rows...)
		ts.keys = keys
	}

	bounded, err := sheet.Bound(rng, len(grid), len(headers))
	if err != nil {
		return nil, err
	}

	return sheet.Window(grid, bounded), nil
}

func (ts *TableStore) readRows(ctx context.Context, headers []string) ([][]string, []string, error) {
	columns := make([]string, len(headers))
	for i, header := range headers {
		columns[i] = fmt.Sprintf("COALESCE(%s::text, '')", quote(header))
	}

	query := fmt.Sprintf("SELECT %s::text, %s FROM %s ORDER BY %s;",
		quote(ts.key), strings.Join(columns, ", "), ts.qualified(), quote(ts.key))

	rows, err := ts.db.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query table rows: %w", err)
	}
	defer rows.Close()

	var (
		grid [][]string
		keys []string
	)
	for rows.Next() {
		var key string
		cells := make([]string, len(headers))
		dest := make([]any, 0, len(headers)+1)
		dest = append(dest, &key)
		for i := range cells {
			dest = append(dest, &cells[i])
		}

		if errScan := rows.Scan(dest...); errScan != nil {
			return nil, nil, fmt.Errorf("failed to scan table row: %w", errScan)
		}
		keys = append(keys, key)
		grid = append(grid, cells)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read row: %w", err)
	}

	return grid, keys, nil
}

func (ts *TableStore) loadKeys(ctx context.Context) error {
	query := fmt.Sprintf("SELECT %s::text FROM %s ORDER BY %s;", quote(ts.key), ts.qualified(), quote(ts.key))

	rows, err := ts.db.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query row keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if errScan := rows.Scan(&key); errScan != nil {
			return fmt.Errorf("failed to scan row key: %w", errScan)
		}
		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("failed to read row: %w", err)
	}

	ts.keys = keys

	return nil
}

// SetCellValue renames a column when row is the header row and updates one
// field of the row's record otherwise.
func (ts *TableStore) SetCellValue(ctx context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("%w: cell (%d, %d)", sheet.ErrInvalidRange, row, col)
	}

	headers, err := ts.Headers(ctx)
	if err != nil {
		return err
	}
	if col > len(headers) {
		return fmt.Errorf("%w: column %d of %d", ErrColumnNotFound, col, len(headers))
	}
	column := headers[col-1]

	if row == sheet.HeaderRow {
		return ts.renameColumn(ctx, headers, column, value)
	}

	if ts.keys == nil {
		if err = ts.loadKeys(ctx); err != nil {
			return err
		}
	}
	idx := row - sheet.HeaderRow - 1
	if idx >= len(ts.keys) {
		return fmt.Errorf("%w: row %d of %d", ErrRowNotFound, row, len(ts.keys)+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s::text = $2;",
		ts.qualified(), quote(column), quote(ts.key))

	tag, err := ts.db.Exec(ctx, query, value, ts.keys[idx])
	if err != nil {
		return fmt.Errorf("failed to update cell (%d, %d): %w", row, col, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: key %s", ErrRowNotFound, ts.keys[idx])
	}

	return nil
}

// renameColumn gives column from the name to. Column names are unique within a
// table, so a name taken by another column fails with ErrDuplicateColumn.
func (ts *TableStore) renameColumn(ctx context.Context, headers []string, from, to string) error {
	if from == to {
		return nil
	}
	if slices.Contains(headers, to) {
		ts.log.ErrorContext(ctx, "Column name already taken", "table", ts.table, "from", from, "to", to)
		return fmt.Errorf("%w: %s.%s", ErrDuplicateColumn, ts.table, to)
	}

	query := fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s;", ts.qualified(), quote(from), quote(to))
	if _, err := ts.db.Exec(ctx, query); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == duplicateColumnCode {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateColumn, ts.table, to)
		}
		return fmt.Errorf("failed to rename column %q: %w", from, err)
	}

	if from == ts.key {
		ts.key = to
	}
	ts.log.DebugContext(ctx, "Column renamed", "table", ts.table, "from", from, "to", to)

	return nil
}

// InsertColumnsAfter appends count text columns. Columns cannot be inserted in the
// middle of a table, so col must be the last column.
func (ts *TableStore) InsertColumnsAfter(ctx context.Context, col, count int) error {
	if col < 0 || count < 1 {
		return fmt.Errorf("%w: insert %d columns after %d", sheet.ErrInvalidRange, count, col)
	}

	headers, err := ts.Headers(ctx)
	if err != nil {
		return err
	}
	if col != len(headers) {
		return fmt.Errorf("%w: after column %d of %d", ErrMidTableInsert, col, len(headers))
	}

	additions := make([]string, count)
	for i := range additions {
		additions[i] = "ADD COLUMN " + quote(fmt.Sprintf("column_%d", col+i+1)) + " text"
	}

	query := fmt.Sprintf("ALTER TABLE %s %s;", ts.qualified(), strings.Join(additions, ", "))
	if _, err = ts.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to add columns: %w", err)
	}

	ts.log.InfoContext(ctx, "Columns appended", "table", ts.table, "count", count)

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrColumnNotFound is returned when a cell refers to a column the table does not have.
	ErrColumnNotFound = errors.New("column not found")
	// ErrRowNotFound is returned when a cell refers to a row the table does not have.
	ErrRowNotFound = errors.New("row not found")
	// ErrMidTableInsert is returned when columns are inserted anywhere but after the last one.
	ErrMidTableInsert = errors.New("columns can only be appended to a table")
	// ErrDuplicateColumn is returned when a column would be renamed to a name the table
	// already uses. Tables holding only some of the output columns end up here.
	ErrDuplicateColumn = errors.New("column name already in use, drop or rename the existing column")
)

// duplicateColumnCode is the SQLSTATE of duplicate_column.
const duplicateColumnCode = "42701"

// Database is the subset of a pgx connection pool the table store uses.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewDatabase opens a connection pool for dsn and checks that the server answers.
func NewDatabase(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// TableStore exposes a PostgreSQL table as a sheet: row 1 holds the column names and
// data rows follow in key column order.
type TableStore struct {
	db     Database
	log    *slog.Logger
	schema string
	table  string
	key    string
	keys   []string // key values of the data rows, in row order
}

// NewTableStore creates a store over schema.table ordered by the key column.
// An empty schema means "public".
func NewTableStore(db Database, log *slog.Logger, schema, table, key string) *TableStore {
	if schema == "" {
		schema = "public"
	}

	return &TableStore{db: db, log: log, schema: schema, table: table, key: key}
}

func (ts *TableStore) qualified() string {
	return pgx.Identifier{ts.schema, ts.table}.Sanitize()
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

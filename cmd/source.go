package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnknownOlympus/geosheet/internal/repository"
	"github.com/UnknownOlympus/geosheet/internal/sheet"
)

// source is an opened table together with how to persist and release it.
type source struct {
	store sheet.Store
	save  func(path string) error // nil when writes go straight to the store
	check healthCheck
	close func()
}

// openSource opens the table selected by flags.
func openSource(ctx context.Context, a app, f sourceFlags) (*source, error) {
	if f.table != "" {
		pool, err := repository.NewDatabase(ctx, a.cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		a.log.InfoContext(ctx, "Connected to database", "host", a.cfg.Database.Host, "table", f.table)

		return &source{
			store: repository.NewTableStore(pool, a.log, f.schema, f.table, f.key),
			check: pool.Ping,
			close: pool.Close,
		}, nil
	}

	switch ext := strings.ToLower(filepath.Ext(f.input)); ext {
	case ".xlsx", ".xlsm":
		store, err := sheet.OpenExcelStore(f.input, f.sheet)
		if err != nil {
			return nil, err
		}
		a.log.InfoContext(ctx, "Workbook opened", "path", f.input, "sheet", store.SheetName())

		return &source{
			store: store,
			save:  store.SaveAs,
			close: func() { _ = store.Close() },
		}, nil
	case ".csv":
		file, err := os.Open(f.input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()

		store, err := sheet.LoadCSV(file)
		if err != nil {
			return nil, err
		}

		return &source{
			store: store,
			save:  func(path string) error { return writeCSV(store, path) },
			close: func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported input type %q, expected .xlsx or .csv", ext)
	}
}

func writeCSV(store *sheet.MemoryStore, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if err = store.WriteCSV(file); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

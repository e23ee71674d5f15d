//go:build integration

package repository_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/UnknownOlympus/geosheet/internal/repository"
	"github.com/UnknownOlympus/geosheet/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestTableStore_Postgres(t *testing.T) {
	ctx := t.Context()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("sheets"),
		postgres.WithUsername("geosheet"),
		postgres.WithPassword("geosheet"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := repository.NewDatabase(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `CREATE TABLE places (id integer PRIMARY KEY, street text, city text);`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO places VALUES (2, 'Side Rd', 'Boston'), (1, 'Main St', NULL);`)
	require.NoError(t, err)

	store := repository.NewTableStore(pool, slog.Default(), "", "places", "id")
	registry := sheet.NewColumnRegistry(store, models.DefaultCanonicalColumns(), slog.Default())

	headers, err := store.Headers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "street", "city"}, headers)

	slots, err := registry.Resolve(ctx, headers)
	require.NoError(t, err)
	assert.Equal(t, models.ColumnSlots{Longitude: 4, Latitude: 5, Accuracy: 6}, slots)

	require.NoError(t, store.SetCellValue(ctx, 2, slots.Accuracy, "building"))

	values, err := store.Values(ctx, models.Range{FirstRow: 1, FirstCol: 2})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"street", "city", "geo_longitude", "geo_latitude", "geo_accuracy"},
		{"Main St", "", "", "", "building"},
		{"Side Rd", "Boston", "", "", ""},
	}, values)

	headers, err = store.Headers(ctx)
	require.NoError(t, err)
	again, err := registry.Resolve(ctx, headers)
	require.NoError(t, err)
	assert.Equal(t, slots, again)
}

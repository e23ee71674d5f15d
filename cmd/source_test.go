package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/geosheet/internal/config"
	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSource(t *testing.T) {
	defer filet.CleanUp(t)
	ctx := t.Context()
	testApp := app{cfg: &config.Config{}, log: slog.Default()}

	t.Run("csv round trip", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		input := filepath.Join(dir, "in.csv")
		filet.File(t, input, "Street,City\n1 Main St,New York\n")

		src, err := openSource(ctx, testApp, sourceFlags{input: input})
		require.NoError(t, err)
		defer src.close()

		require.NoError(t, src.store.SetCellValue(ctx, 2, 3, "-74.0"))
		output := filepath.Join(dir, "out.csv")
		require.NoError(t, src.save(output))

		written, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "Street,City,\n1 Main St,New York,-74.0\n", string(written))
	})

	t.Run("csv rows are readable", func(t *testing.T) {
		input := filepath.Join(filet.TmpDir(t, ""), "in.CSV")
		filet.File(t, input, "a\nb\n")

		src, err := openSource(ctx, testApp, sourceFlags{input: input})
		require.NoError(t, err)

		values, err := src.store.Values(ctx, models.Range{FirstRow: 2, FirstCol: 1})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"b"}}, values)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := openSource(ctx, testApp, sourceFlags{input: filepath.Join(filet.TmpDir(t, ""), "none.csv")})
		require.ErrorContains(t, err, "failed to open input")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := openSource(ctx, testApp, sourceFlags{input: "addresses.ods"})
		require.ErrorContains(t, err, "unsupported input type")
	})
}

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{envLocal, envDev, envProd, "unknown"} {
		t.Run(env, func(t *testing.T) {
			assert.NotNil(t, setupLogger(env))
		})
	}

	t.Run("levels follow the environment", func(t *testing.T) {
		ctx := t.Context()
		assert.True(t, setupLogger(envLocal).Enabled(ctx, slog.LevelDebug))
		assert.False(t, setupLogger(envDev).Enabled(ctx, slog.LevelDebug))
		assert.False(t, setupLogger(envProd).Enabled(ctx, slog.LevelInfo))
		assert.True(t, setupLogger(envProd).Enabled(ctx, slog.LevelWarn))
	})
}

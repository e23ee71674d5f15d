package main

import (
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/geosheet/internal/config"
	"github.com/UnknownOlympus/geosheet/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// errNoInput is returned when neither a file nor a table was given.
var errNoInput = errors.New("one of --input or --table is required")

// sourceFlags select the table a command works on.
type sourceFlags struct {
	input  string
	table  string
	schema string
	key    string
	sheet  string
	output string
}

// app carries what every command needs once the configuration is loaded.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	reg     *prometheus.Registry
	metrics *metrics.Metrics
}

var (
	flags   sourceFlags
	current app
)

var rootCmd = &cobra.Command{
	Use:   "geosheet",
	Short: "Geocode addresses stored in spreadsheets and tables",
	Long: `
geosheet reads addresses from an .xlsx workbook, a CSV file or a PostgreSQL table,
geocodes them with a configurable provider and writes longitude, latitude and
accuracy back into the same rows. It can also export rows with coordinates as a
GeoJSON feature collection.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Create a separate registry for metrics
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		current = app{
			cfg:     cfg,
			log:     setupLogger(cfg.Env),
			reg:     reg,
			metrics: metrics.NewMetrics(reg),
		}

		if flags.input == "" && flags.table == "" {
			return errNoInput
		}
		if flags.input != "" && flags.table != "" {
			return errors.New("--input and --table are mutually exclusive")
		}

		current.log.DebugContext(cmd.Context(), "Configuration loaded",
			"provider", cfg.ProviderType, "command", cmd.Name())

		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.input, "input", "i", "", "input file (.xlsx or .csv)")
	pf.StringVar(&flags.table, "table", "", "PostgreSQL table to read instead of a file")
	pf.StringVar(&flags.schema, "schema", "public", "schema of --table")
	pf.StringVar(&flags.key, "key", "id", "column that orders the rows of --table")
	pf.StringVar(&flags.sheet, "sheet", "", "worksheet of an .xlsx input, the active one by default")
	pf.StringVarP(&flags.output, "output", "o", "", "output file")

	rootCmd.AddCommand(geocodeCmd, exportCmd)
}

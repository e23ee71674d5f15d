package main

import (
	"fmt"

	"github.com/UnknownOlympus/geosheet/internal/geocoding"
	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/UnknownOlympus/geosheet/internal/service"
	"github.com/UnknownOlympus/geosheet/internal/sheet"
	"github.com/spf13/cobra"
)

var geocodeRange string

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Geocode the addresses of a range and write the results back",
	Long: `
geocode joins the selected cells of every row into an address, asks the configured
provider for its coordinates and writes them into the geo_longitude, geo_latitude
and geo_accuracy columns, creating them when needed. Rows that already hold a
result are skipped, so an interrupted run can simply be started again.
`,
	Example: `  geosheet geocode --input customers.xlsx --range B2:D
  geosheet geocode --input stores.csv --range C --output stores-geocoded.csv
  geosheet geocode --table offices --key office_id`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, logger := current.cfg, current.log

		selection := models.Range{FirstRow: 1, FirstCol: 1}
		if geocodeRange != "" {
			var err error
			if selection, err = sheet.ParseRange(geocodeRange); err != nil {
				return err
			}
		}

		// Create the adapter using the factory, so the provider is resolved once per run.
		providerConfig := geocoding.ProviderConfig{
			Type:      geocoding.ProviderType(cfg.ProviderType),
			APIKey:    cfg.APIKey,
			RateLimit: cfg.RateLimit,
			Logger:    logger,
		}
		adapter, err := geocoding.NewAdapter(providerConfig)
		if err != nil {
			return fmt.Errorf("failed to create geocoding provider: %w", err)
		}
		logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

		src, err := openSource(ctx, current, flags)
		if err != nil {
			return err
		}
		defer src.close()

		if cfg.MetricsPort > 0 {
			go startMonitoringServer(ctx, logger, current.reg, src.check, cfg.MetricsPort)
		}

		client := geocoding.NewClient(
			geocoding.NewHTTPClient(cfg.Timeout),
			geocoding.NewLimiter(providerConfig),
			cfg.ProviderType, // Provider name for metrics
			current.metrics,
			logger,
		)
		registry := sheet.NewColumnRegistry(src.store, cfg.Columns, logger)
		geoService := service.NewGeocodingService(
			logger, src.store, registry, client, adapter, current.metrics, cfg.AddrPrefix,
		)

		report, runErr := geoService.Run(ctx, selection)

		// Whatever was written before a cancellation is kept.
		if src.save != nil {
			output := flags.output
			if output == "" {
				output = flags.input
			}
			if err = src.save(output); err != nil {
				return err
			}
			logger.InfoContext(ctx, "Results saved", "path", output)
		}

		cmd.Printf("processed: %d, skipped: %d, unparseable: %d, gave up: %d, write errors: %d\n",
			report.Processed, report.Skipped, report.Failed, report.GaveUp, report.WriteErrors)

		return runErr
	},
}

func init() {
	geocodeCmd.Flags().StringVarP(&geocodeRange, "range", "r", "",
		"cells holding the address, e.g. B2:D40, B:D or C (all columns by default)")
}

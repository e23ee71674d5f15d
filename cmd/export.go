package main

import (
	"fmt"
	"io"
	"os"

	"github.com/UnknownOlympus/geosheet/internal/feature"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export rows with coordinates as a GeoJSON feature collection",
	Long: `
export turns every row that has an id and numeric latitude and longitude into a
GeoJSON point feature. Column headers are normalized to camel case ("Place Name"
becomes "placeName") and the id, latitude and longitude fields are looked up by
those names, see GEOSHEET_FIELD_ID, GEOSHEET_FIELD_LAT and GEOSHEET_FIELD_LON.
`,
	Example: `  geosheet export --input places.xlsx --output places.geojson
  geosheet export --table places -o -`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		src, err := openSource(ctx, current, flags)
		if err != nil {
			return err
		}
		defer src.close()

		collection, err := feature.Collect(ctx, current.log, src.store, current.cfg.Fields)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if flags.output != "" && flags.output != "-" {
			file, errCreate := os.Create(flags.output)
			if errCreate != nil {
				return fmt.Errorf("failed to create output: %w", errCreate)
			}
			defer file.Close()
			out = file
		}

		return feature.Encode(out, collection)
	},
}

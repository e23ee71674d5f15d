package feature

import (
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/paulmach/orb/geojson"
)

// Build maps a row onto a point feature. Properties hold every cell keyed by its
// normalized header. Build returns nil when the id is blank or either coordinate
// is not a finite number.
func Build(row, normalizedHeaders []string, mapping models.FieldMapping) *geojson.Feature {
	properties := make(geojson.Properties, len(normalizedHeaders))
	for i, key := range normalizedHeaders {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		properties[key] = value
	}

	id, _ := properties[mapping.ID].(string)
	if strings.TrimSpace(id) == "" {
		return nil
	}

	lat, ok := parseCoordinate(properties[mapping.Latitude])
	if !ok {
		return nil
	}
	lon, ok := parseCoordinate(properties[mapping.Longitude])
	if !ok {
		return nil
	}

	feature := geojson.NewFeature(models.Coordinates{Longitude: lon, Latitude: lat}.Point())
	feature.ID = id
	feature.Properties = properties

	return feature
}

func parseCoordinate(value any) (float64, bool) {
	text, ok := value.(string)
	if !ok {
		return 0, false
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}

	return number, true
}

package models

// Default labels of the output columns.
const (
	DefaultLongitudeColumn = "geo_longitude"
	DefaultLatitudeColumn  = "geo_latitude"
	DefaultAccuracyColumn  = "geo_accuracy"
)

// CanonicalColumns holds the header labels of the three output columns.
type CanonicalColumns struct {
	Longitude string
	Latitude  string
	Accuracy  string
}

// DefaultCanonicalColumns returns the geo_* labels.
func DefaultCanonicalColumns() CanonicalColumns {
	return CanonicalColumns{
		Longitude: DefaultLongitudeColumn,
		Latitude:  DefaultLatitudeColumn,
		Accuracy:  DefaultAccuracyColumn,
	}
}

// ColumnSlots are the 1-based positions of the output columns within a table.
type ColumnSlots struct {
	Longitude int
	Latitude  int
	Accuracy  int
}

// FieldMapping names the normalized headers that carry the record id and coordinates.
type FieldMapping struct {
	ID        string
	Latitude  string
	Longitude string
}

// Range is an inclusive, 1-based block of cells. A zero LastRow or LastCol
// extends the range to the last populated row or column.
type Range struct {
	FirstRow int
	LastRow  int
	FirstCol int
	LastCol  int
}

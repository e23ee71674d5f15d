package models

// AccuracyFailure marks a provider answer that could not be parsed.
const AccuracyFailure = "failure"

// GeocodeResult is the normalized answer of a geocoding provider, kept as text
// because it is written back verbatim into table cells.
type GeocodeResult struct {
	Longitude string // Longitude of the first candidate, empty on failure.
	Latitude  string // Latitude of the first candidate, empty on failure.
	Accuracy  string // Provider specific accuracy label or AccuracyFailure.
}

// FailedResult returns the sentinel result for an unparseable provider body.
func FailedResult() GeocodeResult {
	return GeocodeResult{Accuracy: AccuracyFailure}
}

// Failed reports whether the result is the parse failure sentinel.
func (r GeocodeResult) Failed() bool {
	return r.Accuracy == AccuracyFailure
}

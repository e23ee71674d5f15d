package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row statuses used as label values of RowsProcessed.
const (
	StatusSuccess    = "success"
	StatusFailure    = "failure"
	StatusGaveUp     = "gave_up"
	StatusSkipped    = "skipped"
	StatusWriteError = "write_error"
)

type Metrics struct {
	RowsProcessed  *prometheus.CounterVec
	APIErrors      prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
	Retries        prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RowsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geosheet_rows_processed_total",
			Help: "Total number of table rows handled by geocoding passes.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geosheet_provider_api_errors_total",
			Help: "Total number of failed attempts against the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geosheet_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		Retries: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geosheet_provider_retries_total",
			Help: "Total number of backoff waits before retrying a provider request.",
		}),
	}
}

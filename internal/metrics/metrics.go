package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the tracker.
type Metrics struct {
	// Ingestion metrics
	EventsIngested   *prometheus.CounterVec
	IngestRejections *prometheus.CounterVec
	BatchSize        prometheus.Histogram
	AppendLatency    prometheus.Histogram

	// HTTP metrics
	HTTPDuration *prometheus.HistogramVec

	// Storage metrics
	StoreErrors prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		EventsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_ingested_total",
				Help:      "Total number of events appended to the track log",
			},
			[]string{"eventtype"},
		),
		IngestRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingest_rejections_total",
				Help:      "Total number of rejected track submissions",
			},
			[]string{"eventtype"},
		),
		BatchSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ingest_batch_size",
				Help:      "Number of ids per accepted submission",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),
		AppendLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "append_duration_seconds",
				Help:      "Latency of event store batch appends",
				Buckets:   prometheus.DefBuckets,
			},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by path, method and status",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method", "status"},
		),
		StoreErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total number of event store failures",
			},
		),
	}
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordIngested records n accepted events of the given type.
func (m *Metrics) RecordIngested(eventtype string, n int) {
	m.EventsIngested.WithLabelValues(eventtype).Add(float64(n))
	m.BatchSize.Observe(float64(n))
}

// RecordRejection records one rejected submission.
func (m *Metrics) RecordRejection(eventtype string) {
	m.IngestRejections.WithLabelValues(eventtype).Inc()
}

// RecordHTTP records one completed HTTP request.
func (m *Metrics) RecordHTTP(method, path string, status int, d time.Duration) {
	m.HTTPDuration.WithLabelValues(path, method, strconv.Itoa(status)).Observe(d.Seconds())
}

// RecordAppend records one batch append attempt.
func (m *Metrics) RecordAppend(d time.Duration, err error) {
	m.AppendLatency.Observe(d.Seconds())
	if err != nil {
		m.StoreErrors.Inc()
	}
}

// internal/monitoring/metrics.go
package monitoring

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for one scraper process. All
// methods are safe on a nil receiver so callers can run without metrics.
type Metrics struct {
	registry *prometheus.Registry

	pagesFetched   *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	postsExtracted *prometheus.CounterVec
	fallbackFields *prometheus.CounterVec
	recordsWritten *prometheus.CounterVec
	acquisitions   *prometheus.CounterVec
	workersActive  prometheus.Gauge
}

// NewMetrics creates a metrics set on its own registry, so tests can create
// instances freely without duplicate-registration panics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	const namespace = "linkedscout"

	return &Metrics{
		registry: registry,
		pagesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Pages fetched via the headless browser, by page kind and outcome.",
		}, []string{"kind", "status"}),
		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Wall-clock duration of page fetches.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8),
		}, []string{"kind"}),
		postsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_extracted_total",
			Help:      "Post extraction pipeline outcomes.",
		}, []string{"status"}),
		fallbackFields: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_fields_total",
			Help:      "Fields supplied by the visual fallback extractor.",
		}, []string{"field"}),
		recordsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "Records upserted into persistence, by store and record kind.",
		}, []string{"store", "kind"}),
		acquisitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "acquisitions_total",
			Help:      "Profile acquisition runs by outcome.",
		}, []string{"status"}),
		workersActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers_active",
			Help:      "Post extraction workers currently running.",
		}),
	}
}

// PageFetched records a completed or failed page fetch.
func (m *Metrics) PageFetched(kind, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.pagesFetched.WithLabelValues(kind, status).Inc()
	if status == "ok" {
		m.fetchDuration.WithLabelValues(kind).Observe(duration.Seconds())
	}
}

// PostExtracted records one pipeline outcome: ok, degraded or failed.
func (m *Metrics) PostExtracted(status string) {
	if m == nil {
		return
	}
	m.postsExtracted.WithLabelValues(status).Inc()
}

// FallbackUsed records that the visual extractor supplied a field.
func (m *Metrics) FallbackUsed(field string) {
	if m == nil {
		return
	}
	m.fallbackFields.WithLabelValues(field).Inc()
}

// RecordsWritten records upserted persistence records.
func (m *Metrics) RecordsWritten(store, kind string, n int) {
	if m == nil {
		return
	}
	m.recordsWritten.WithLabelValues(store, kind).Add(float64(n))
}

// AcquisitionFinished records the outcome of a full acquisition run.
func (m *Metrics) AcquisitionFinished(status string) {
	if m == nil {
		return
	}
	m.acquisitions.WithLabelValues(status).Inc()
}

// WorkerStarted and WorkerStopped track the active worker gauge.
func (m *Metrics) WorkerStarted() {
	if m == nil {
		return
	}
	m.workersActive.Inc()
}

func (m *Metrics) WorkerStopped() {
	if m == nil {
		return
	}
	m.workersActive.Dec()
}

// Handler returns the HTTP handler exposing this metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewServer builds an HTTP server exposing /metrics and /healthz on addr.
// The caller owns its lifecycle.
func (m *Metrics) NewServer(addr string) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

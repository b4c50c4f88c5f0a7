package api

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sajjad-MoBe/slotstore/internal/storage"
)

const metricsNamespace = "slotstore"

// otherPath labels requests for paths the server does not route
const otherPath = "other"

// Metrics holds all Prometheus metrics of a server. Each instance owns its
// registry so several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	requestErrors   *prometheus.CounterVec

	// Slot metrics
	operations *prometheus.CounterVec

	paths map[string]bool
}

// NewMetrics creates the metrics of a server storing its value in slot
func NewMetrics(slot *storage.Slot) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_errors_total",
				Help:      "Total number of HTTP requests answered with an error status",
			},
			[]string{"method", "path", "status"},
		),
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "slot_operations_total",
				Help:      "Total number of slot operations",
			},
			[]string{"operation"},
		),
		paths: make(map[string]bool),
	}

	factory.NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "slot_writes_total",
			Help:      "Total number of writes applied to the slot",
		},
		func() float64 { return float64(slot.Stats().Writes) },
	)
	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "slot_last_write_timestamp_seconds",
			Help:      "Unix time of the last write to the slot, 0 if never written",
		},
		func() float64 {
			last := slot.Stats().LastWrite
			if last.IsZero() {
				return 0
			}
			return float64(last.UnixNano()) / 1e9
		},
	)

	return m
}

// Registry returns the registry holding the server's metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// trackPath adds path to the set of paths recorded by name. It must be
// called before the server starts serving.
func (m *Metrics) trackPath(path string) {
	m.paths[path] = true
}

func (m *Metrics) pathLabel(path string) string {
	if m.paths[path] {
		return path
	}
	return otherPath
}

// MetricsMiddleware adds Prometheus metrics to requests
func (m *Metrics) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snoop := httpsnoop.CaptureMetrics(next, w, r)

		path := m.pathLabel(r.URL.Path)
		status := strconv.Itoa(snoop.Code)

		m.requestDuration.WithLabelValues(r.Method, path, status).Observe(snoop.Duration.Seconds())
		m.requestTotal.WithLabelValues(r.Method, path, status).Inc()

		if snoop.Code >= 400 {
			m.requestErrors.WithLabelValues(r.Method, path, status).Inc()
		}
	})
}

// RecordOperation counts a slot operation
func (m *Metrics) RecordOperation(operation string) {
	m.operations.WithLabelValues(operation).Inc()
}

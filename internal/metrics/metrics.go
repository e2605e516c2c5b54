// Package metrics exposes Prometheus collectors for the HTTP API and the
// diagram session.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "netdiagram"

// Metrics owns a private registry. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	interchange         *prometheus.CounterVec
	snapshots           *prometheus.CounterVec
	entities            *prometheus.GaugeVec
}

// New creates a fresh registry with every collector registered
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests served",
	}, []string{"method", "path", "status"})

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	interchange := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interchange_total",
		Help:      "Imports and exports by direction and format",
	}, []string{"direction", "format"})

	snapshots := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_operations_total",
		Help:      "Snapshot store operations by kind",
	}, []string{"operation"})

	entities := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "diagram_entities",
		Help:      "Entities currently in the diagram",
	}, []string{"kind"})

	registry.MustRegister(httpRequests, httpRequestDuration, interchange, snapshots, entities)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpRequestDuration: httpRequestDuration,
		interchange:         interchange,
		snapshots:           snapshots,
		entities:            entities,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// IncImport counts an import in the given format
func (m *Metrics) IncImport(format string) {
	if m == nil {
		return
	}
	m.interchange.WithLabelValues("import", format).Inc()
}

// IncExport counts an export in the given format
func (m *Metrics) IncExport(format string) {
	if m == nil {
		return
	}
	m.interchange.WithLabelValues("export", format).Inc()
}

// IncSnapshot counts a snapshot operation such as save or restore
func (m *Metrics) IncSnapshot(operation string) {
	if m == nil {
		return
	}
	m.snapshots.WithLabelValues(operation).Inc()
}

// SetEntityCounts publishes the current diagram size
func (m *Metrics) SetEntityCounts(devices, connections, zones int) {
	if m == nil {
		return
	}
	m.entities.WithLabelValues("device").Set(float64(devices))
	m.entities.WithLabelValues("connection").Set(float64(connections))
	m.entities.WithLabelValues("zone").Set(float64(zones))
}

// Handler exposes the registry over HTTP
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

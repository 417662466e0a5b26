package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the dashboard's Prometheus collectors. Each Server owns a
// private registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	inFlight        prometheus.Gauge
	dispatches      *prometheus.CounterVec
	exports         *prometheus.CounterVec
	imports         *prometheus.CounterVec
}

// NewMetrics registers the HTTP, bulk action, export and import metrics,
// the search index build counters of every collection, and the Go
// runtime collectors.
func NewMetrics(service *core.Service) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_bulk_dispatches_total",
			Help: "Bulk action dispatches, confirmations and cancellations by outcome",
		}, []string{"collection", "action", "outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_exports_total",
			Help: "Exports written by collection and format",
		}, []string{"collection", "format"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_import_rows_total",
			Help: "Imported rows by result",
		}, []string{"collection", "result"}),
	}

	m.registry.MustRegister(
		m.requestDuration,
		m.requestsTotal,
		m.inFlight,
		m.dispatches,
		m.exports,
		m.imports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, c := range service.Registry().All() {
		m.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "dashboard_search_index_builds_total",
			Help:        "Search indexes built per collection",
			ConstLabels: prometheus.Labels{"collection": c.Info().Key},
		}, func() float64 { return float64(c.IndexBuilds()) }))
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "dashboard_collection_items",
			Help:        "Items currently held per collection",
			ConstLabels: prometheus.Labels{"collection": c.Info().Key},
		}, func() float64 { return float64(c.Len()) }))
	}

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records duration and count per chi route pattern, so ids in
// paths do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := strconv.Itoa(ww.status)
		m.requestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}

func (m *Metrics) recordDispatch(collection, action, outcome string) {
	m.dispatches.WithLabelValues(collection, action, outcome).Inc()
}

func (m *Metrics) recordExport(collection, format string) {
	m.exports.WithLabelValues(collection, format).Inc()
}

func (m *Metrics) recordImport(collection string, res core.ImportResult) {
	m.imports.WithLabelValues(collection, "inserted").Add(float64(res.Inserted))
	m.imports.WithLabelValues(collection, "skipped").Add(float64(res.Skipped))
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

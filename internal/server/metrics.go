package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/chaosmeter/pkg/observability"
)

// Metrics holds the Prometheus collectors of the server. It implements
// observability.PipelineHooks and observability.HTTPHooks, so registering
// it with the observability package records pipeline stages as well as
// requests.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge

	// Pipeline metrics
	ParseTotal      *prometheus.CounterVec
	ParseDuration   *prometheus.HistogramVec
	GraphNodes      prometheus.Histogram
	AnalyzeTotal    *prometheus.CounterVec
	AnalyzeDuration *prometheus.HistogramVec
	RenderTotal     *prometheus.CounterVec
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates and registers all collectors in registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chaosmeter_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chaosmeter_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "chaosmeter_http_requests_in_flight",
				Help: "Number of HTTP requests being served",
			},
		),

		ParseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chaosmeter_parse_total",
				Help: "Total number of parsed reports",
			},
			[]string{"format", "status"},
		),
		ParseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chaosmeter_parse_duration_seconds",
				Help:    "Report parsing duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		GraphNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chaosmeter_graph_nodes",
				Help:    "Number of nodes in parsed graphs",
				Buckets: prometheus.ExponentialBuckets(10, 4, 7),
			},
		),
		AnalyzeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chaosmeter_analyze_total",
				Help: "Total number of metric computations",
			},
			[]string{"metric", "status"},
		),
		AnalyzeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chaosmeter_analyze_duration_seconds",
				Help:    "Metric computation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"metric"},
		),
		RenderTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chaosmeter_render_total",
				Help: "Total number of rendered exports",
			},
			[]string{"format", "status"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPInFlight,
		m.ParseTotal,
		m.ParseDuration,
		m.GraphNodes,
		m.AnalyzeTotal,
		m.AnalyzeDuration,
		m.RenderTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnParseStart(context.Context, string, string) {}

func (m *Metrics) OnParseComplete(_ context.Context, format, _ string, nodeCount, _ int, duration time.Duration, err error) {
	m.ParseTotal.WithLabelValues(format, status(err)).Inc()
	m.ParseDuration.WithLabelValues(format).Observe(duration.Seconds())
	if err == nil {
		m.GraphNodes.Observe(float64(nodeCount))
	}
}

func (m *Metrics) OnAnalyzeStart(context.Context, string, int) {}

func (m *Metrics) OnAnalyzeComplete(_ context.Context, metric string, duration time.Duration, err error) {
	m.AnalyzeTotal.WithLabelValues(metric, status(err)).Inc()
	m.AnalyzeDuration.WithLabelValues(metric).Observe(duration.Seconds())
}

func (m *Metrics) OnRenderStart(context.Context, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, _ time.Duration, err error) {
	m.RenderTotal.WithLabelValues(format, status(err)).Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.HTTPInFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	m.HTTPInFlight.Dec()
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// httpHooks reports requests to the server's collectors and to any hooks
// registered with observability.SetHTTPHooks.
type httpHooks struct {
	metrics *Metrics
}

func (h httpHooks) OnRequest(ctx context.Context, method, path string) {
	h.metrics.OnRequest(ctx, method, path)
	observability.HTTP().OnRequest(ctx, method, path)
}

func (h httpHooks) OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	h.metrics.OnResponse(ctx, method, route, statusCode, duration)
	observability.HTTP().OnResponse(ctx, method, route, statusCode, duration)
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// instrument reports every request to hooks, labelled by its chi route
// pattern rather than the raw path. Requests matching no route share the
// "unmatched" label.
func instrument(hooks observability.HTTPHooks) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			hooks.OnResponse(r.Context(), r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}

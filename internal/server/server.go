// Package server exposes the analysis pipeline over HTTP.
//
// Every request is an independent batch run: the body is parsed into a fresh
// graph, analyzed and discarded. Nothing is kept between requests.
//
// Routes:
//
//	POST /v1/analyze?format=<ext>&metric=<m>&exclude=<re>  one metric
//	POST /v1/report?format=<ext>&exclude=<re>              every metric
//	GET  /healthz                                           liveness and version
//	GET  /metrics                                           Prometheus metrics
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/config"
	"github.com/matzehuels/chaosmeter/pkg/pipeline"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 10 * time.Second
)

// Server handles analysis requests.
type Server struct {
	cfg     config.Config
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics *Metrics
	router  chi.Router
}

// New creates a server. A fresh Prometheus registry backs its metrics.
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = config.DefaultAddr
	}
	s := &Server{
		cfg:     cfg,
		runner:  pipeline.NewRunner(logger),
		logger:  logger,
		metrics: NewMetrics(prometheus.NewRegistry()),
	}
	s.router = s.routes()
	return s
}

// Metrics returns the server's collectors, for registration as
// observability hooks.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(instrument(httpHooks{s.metrics}))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/report", s.handleReport)
	})
	return r
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) options(r *http.Request) pipeline.Options {
	q := r.URL.Query()
	exclude := q.Get("exclude")
	if !q.Has("exclude") {
		exclude = s.cfg.Exclude
	}
	return pipeline.Options{
		Source:   "request " + requestIDFrom(r.Context()),
		Format:   q.Get("format"),
		Exclude:  exclude,
		Analysis: s.cfg.Options(),
		Logger:   s.logger.With("request_id", requestIDFrom(r.Context())),
	}
}

type requestIDKey struct{}

// requestID tags each request with a UUID, reusing a valid incoming
// X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// metricFrom validates the metric query parameter.
func metricFrom(r *http.Request) (analysis.Metric, error) {
	return analysis.ParseMetric(r.URL.Query().Get("metric"))
}

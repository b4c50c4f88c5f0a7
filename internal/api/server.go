package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"

	"github.com/sajjad-MoBe/slotstore/internal/deployment"
	"github.com/sajjad-MoBe/slotstore/internal/storage"
)

const (
	// shutdownTimeout is the time given for outstanding requests to finish
	// before shutdown.
	shutdownTimeout = 5 * time.Second

	serviceName = "slotstore"
)

// ServerConfig configures the HTTP server
type ServerConfig struct {
	EnableRequestLogging bool
}

// Server represents the HTTP API server
type Server struct {
	logr.Logger
	ServerConfig

	router  *mux.Router
	handler http.Handler
	server  *http.Server

	deployment deployment.Deployment
	routes     deployment.Routes
	slot       *storage.Slot
	metrics    *Metrics
	tracer     *Tracer
}

// NewServer creates a new API server serving dep. Metrics and tracer may be
// nil, in which case the server creates its own metrics and does not trace.
func NewServer(logger logr.Logger, cfg ServerConfig, dep deployment.Deployment, slot *storage.Slot, metrics *Metrics, tracer *Tracer) (*Server, error) {
	if dep == nil || slot == nil {
		return nil, errors.New("deployment and slot are required")
	}
	if metrics == nil {
		metrics = NewMetrics(slot)
	}
	if tracer == nil {
		var err error
		if tracer, err = NewTracer(serviceName, ""); err != nil {
			return nil, err
		}
	}

	s := &Server{
		Logger:       logger,
		ServerConfig: cfg,
		router:       mux.NewRouter(),
		deployment:   dep,
		routes:       deployment.RoutesFor(dep.Kind()),
		slot:         slot,
		metrics:      metrics,
		tracer:       tracer,
	}
	s.setupRoutes()
	s.handler = s.middleware(s.router)
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc(s.routes.SavePath, s.handleSave).Methods(http.MethodPost)
	s.router.HandleFunc(s.routes.ReadPath, s.handleRead).Methods(http.MethodGet)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	for _, path := range []string{s.routes.SavePath, s.routes.ReadPath, "/health", "/metrics"} {
		s.metrics.trackPath(path)
	}
}

// middleware wraps h with the middleware chain, outermost first
func (s *Server) middleware(h http.Handler) http.Handler {
	h = s.tracer.TracingMiddleware(s.spanName)(h)
	h = s.metrics.MetricsMiddleware(h)
	if s.EnableRequestLogging {
		h = LoggingMiddleware(s.Logger)(h)
	}
	h = RecoveryMiddleware(s.Logger)(h)
	return RequestIDMiddleware(h)
}

// spanName names request spans after the routed path
func (s *Server) spanName(r *http.Request) string {
	return r.Method + " " + s.metrics.pathLabel(r.URL.Path)
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts serving http traffic on the given listener and waits until the
// server exits due to error or the context is cancelled.
func (s *Server) Start(ctx context.Context, ln net.Listener) error {
	errch := make(chan error, 1)

	go func() {
		errch <- s.server.Serve(ln)
	}()

	s.Info("started server",
		"address", ln.Addr().String(),
		"deployment", s.deployment.Kind())

	select {
	case err := <-errch:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.Info("gracefully shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			return s.server.Close()
		}
		return nil
	}
}

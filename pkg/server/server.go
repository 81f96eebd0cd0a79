// Package server exposes the keeper registry over an HTTP/JSON control
// surface: CRUD per list, lifecycle transitions, export/import, and a
// Prometheus-format metrics endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getlistd/listd/pkg/config"
	"github.com/getlistd/listd/pkg/keeper"
	"github.com/getlistd/listd/pkg/logging"
	"github.com/getlistd/listd/pkg/portability"
)

// Server is the listd HTTP daemon.
type Server struct {
	host    string
	port    int
	apiKey  string
	version string

	log      *slog.Logger
	registry *keeper.Registry
	stores   *portability.Stores
	metrics  *serverMetrics

	httpServer *http.Server
	startTime  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithAPIKey requires the X-Listd-API-Key header on /api routes.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithVersion sets the version string reported by /api/status.
func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

// New creates a Server for the given stores. The registry must contain the
// same keepers as the stores bundle; BuildStores sets both up consistently.
func New(cfg config.ServerConfig, stores *portability.Stores, registry *keeper.Registry, opts ...Option) *Server {
	s := &Server{
		host:     cfg.Host,
		port:     cfg.Port,
		apiKey:   cfg.APIKey,
		version:  "dev",
		log:      logging.Nop(),
		registry: registry,
		stores:   stores,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newServerMetrics()
	s.startTime = time.Now()

	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.buildHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler, middleware included. Useful for
// tests and for embedding the API in another mux.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the host:port the server binds to.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))
}

// Start runs the server until Shutdown is called. It blocks.
func (s *Server) Start() error {
	s.log.Info("server starting",
		"addr", s.Addr(),
		"version", s.version,
		"lists", s.registry.Names(),
		"auth", s.apiKey != "")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully, waiting for in-flight requests up
// to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}

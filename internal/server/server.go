// Package server exposes the numeric utilities over a JSON HTTP API with
// Prometheus metrics, security headers and request IDs.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/logging"
)

// Default server timeouts.
const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxConnections  = 256
	readHeaderTimeout      = 5 * time.Second
)

// Config holds the server settings that are not security related.
type Config struct {
	// Addr is the listen address, for example ":8080".
	Addr string
	// DefaultAlgo is the Fibonacci algorithm used when a request names none.
	DefaultAlgo string
	// RequestTimeout bounds each request's computation.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration
	// MaxConnections caps simultaneously accepted connections. Further
	// clients wait in the listen backlog.
	MaxConnections int
	// Version is reported by /health.
	Version string
}

// Server is the numkit HTTP API server.
type Server struct {
	httpServer *http.Server
	factory    fibonacci.CalculatorFactory
	config     Config
	security   SecurityConfig
	logger     logging.Logger
	metrics    *Metrics
}

// NewServer creates a server. Zero timeouts take their defaults and a nil
// logger discards logs.
//
// Parameters:
//   - factory: The Fibonacci calculator factory.
//   - cfg: The server configuration.
//   - security: The security configuration.
//   - logger: The logger for request and lifecycle events.
//
// Returns:
//   - *Server: The configured server, not yet listening.
func NewServer(factory fibonacci.CalculatorFactory, cfg Config, security SecurityConfig, logger logging.Logger) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = DefaultMaxConnections
	}
	if cfg.DefaultAlgo == "" {
		cfg.DefaultAlgo = "fast"
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	s := &Server{
		factory:  factory,
		config:   cfg,
		security: security,
		logger:   logger,
		metrics:  NewMetrics(),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}
	return s
}

// Handler returns the routed handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	routes := map[string]http.HandlerFunc{
		"/api/sum":       s.handleSum,
		"/api/nonempty":  s.handleNonEmpty,
		"/api/sortsum":   s.handleSortSum,
		"/api/fibonacci": s.handleFibonacci,
		"/api/distance":  s.handleDistance,
		"/api/area":      s.handleArea,
		"/api/person":    s.handlePerson,
		"/health":        s.handleHealth,
		"/metrics":       s.handleMetrics,
	}
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, SecurityMiddleware(s.security, s.requestIDMiddleware(s.metricsMiddleware(h))))
	}
	mux.HandleFunc("/", SecurityMiddleware(s.security, s.requestIDMiddleware(s.handleNotFound)))
	return mux
}

// Start listens on the configured address and serves until ctx is
// canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled or the server fails. At most
// Config.MaxConnections connections are open at once.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ln = netutil.LimitListener(ln, s.config.MaxConnections)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()
	s.logger.Info("server listening",
		logging.String("addr", ln.Addr().String()),
		logging.Int("max_connections", s.config.MaxConnections),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", logging.Duration("timeout", s.config.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

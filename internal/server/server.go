// Package server provides the HTTP surface of the carrier bridge: a health
// check, Prometheus metrics, and the JSON rate-quoting API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/internal/telemetry"
	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server is the HTTP server for the carrier bridge.
type Server struct {
	port     int
	registry *carrier.Registry
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, registry *carrier.Registry, logger *otelzap.Logger) *Server {
	return NewWithMetrics(cfg, registry, logger, telemetry.NewMetrics())
}

// NewWithMetrics creates a server with injected metrics.
func NewWithMetrics(cfg Config, registry *carrier.Registry, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		port:     cfg.Port,
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/v1/rates", s.handleRates)
	mux.HandleFunc("/api/v1/carriers", s.handleCarriers)
	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

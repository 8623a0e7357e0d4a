package main

import (
	"context"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/internal/config"
	"github.com/Jatin123lodhi/shipping-carrier-integration-service/internal/telemetry"
	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier/ups"
	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	// A local .env is optional; environment variables win.
	_ = godotenv.Load()
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *carrier.Registry {
	registry := carrier.NewRegistry()

	if cfg.UPSEnabled {
		gw := ups.New(ups.Config{
			ClientID:     cfg.UPSClientID,
			ClientSecret: cfg.UPSClientSecret,
			BaseURL:      cfg.UPSBaseURL,
			TokenURL:     cfg.UPSTokenURL,
			Timeout:      cfg.UPSTimeout,
			UseMock:      cfg.UPSUseMock,
			Extra:        cfg.UPSExtra,
		}, logger, tracer)
		registry.Register(gw)
	}

	return registry
}

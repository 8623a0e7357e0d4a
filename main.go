package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/internal/server"
	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "carrier-bridge",
	Short:   "Carrier Bridge - normalized shipping rate quotes over carrier APIs",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Request rate quotes once and print them as JSON",
	RunE:  runRate,
}

var rateFlags struct {
	carrier       string
	originPostal  string
	originCountry string
	destPostal    string
	destCountry   string
	weight        float64
	weightUnit    string
	reference     string
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rateCmd)

	rateCmd.Flags().StringVar(&rateFlags.carrier, "carrier", "ups", "carrier to quote")
	rateCmd.Flags().StringVar(&rateFlags.originPostal, "origin-postal", "", "origin postal code")
	rateCmd.Flags().StringVar(&rateFlags.originCountry, "origin-country", "", "origin country code (ISO 3166-1 alpha-2)")
	rateCmd.Flags().StringVar(&rateFlags.destPostal, "dest-postal", "", "destination postal code")
	rateCmd.Flags().StringVar(&rateFlags.destCountry, "dest-country", "", "destination country code (ISO 3166-1 alpha-2)")
	rateCmd.Flags().Float64Var(&rateFlags.weight, "weight", 0, "package weight")
	rateCmd.Flags().StringVar(&rateFlags.weightUnit, "weight-unit", "kg", "package weight unit (kg or lb)")
	rateCmd.Flags().StringVar(&rateFlags.reference, "reference", "", "correlation reference echoed in the response")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	// Initialize carrier registry
	registry := initCarrierRegistry(cfg, logger, tracer)

	logger.Info("Starting Carrier Bridge",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Strings("carriers", registry.Names()),
	)

	// Start HTTP server
	srv := server.New(server.Config{Port: cfg.Port}, registry, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runRate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry := initCarrierRegistry(cfg, logger, nil)
	gw, cerr := registry.Get(rateFlags.carrier)
	if cerr != nil {
		return cerr
	}

	unit := carrier.WeightLB
	if rateFlags.weightUnit == string(carrier.WeightKG) {
		unit = carrier.WeightKG
	}

	req := &carrier.RateRequest{
		Origin:      carrier.Address{PostalCode: rateFlags.originPostal, CountryCode: rateFlags.originCountry},
		Destination: carrier.Address{PostalCode: rateFlags.destPostal, CountryCode: rateFlags.destCountry},
		Packages:    []carrier.Package{{Weight: rateFlags.weight, WeightUnit: unit}},
		Reference:   rateFlags.reference,
	}

	res := gw.GetRates(cmd.Context(), req)
	if !res.OK {
		return res.Err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Value)
}

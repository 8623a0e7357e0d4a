package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// UPS
	UPSClientID     string        `envconfig:"UPS_CLIENT_ID"`
	UPSClientSecret string        `envconfig:"UPS_CLIENT_SECRET"`
	UPSBaseURL      string        `envconfig:"UPS_BASE_URL" default:"https://onlinetools.ups.com"`
	UPSTokenURL     string        `envconfig:"UPS_TOKEN_URL"` // optional token endpoint override
	UPSTimeout      time.Duration `envconfig:"UPS_TIMEOUT" default:"30s"`
	UPSEnabled      bool          `envconfig:"UPS_ENABLED" default:"true"`
	UPSUseMock      bool          `envconfig:"UPS_USE_MOCK" default:"false"`

	// UPSExtra carries forward-compatible carrier-specific settings as an
	// explicit mapping (comma-separated key:value pairs in the env).
	UPSExtra map[string]string `envconfig:"UPS_EXTRA"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"carrier-bridge"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails startup when required fields are absent. Credentials are
// not required when the UPS gateway is disabled or mocked.
func (c *Config) Validate() error {
	if !c.UPSEnabled || c.UPSUseMock {
		return nil
	}

	var missing []string
	if c.UPSClientID == "" {
		missing = append(missing, "UPS_CLIENT_ID")
	}
	if c.UPSClientSecret == "" {
		missing = append(missing, "UPS_CLIENT_SECRET")
	}
	if c.UPSBaseURL == "" {
		missing = append(missing, "UPS_BASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("ups.enabled", c.UPSEnabled),
		attribute.Bool("ups.mock", c.UPSUseMock),
	}
}

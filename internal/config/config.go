// Package config defines the configuration of the activitycast services.
// Configuration is loaded once at process start and is immutable thereafter.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> Struct Defaults (Lowest)
//
// Any invalid value makes LoadConfig fail and the process exit on startup.
package config

import "time"

// Config is the top-level configuration struct. Sub-components receive only
// the subsets they need.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"activitycast"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Server        ServerConfig
	Security      SecurityConfig
	Engine        EngineConfig
	Batch         BatchConfig
	Observability ObservabilityConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              string        `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s" validate:"gt=0"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	EnableCompression bool          `envconfig:"ENABLE_COMPRESSION" default:"true"`
	MaxBodyBytes      int64         `envconfig:"MAX_BODY_BYTES" default:"2097152" validate:"gt=0"`
}

// SecurityConfig holds CORS and traffic shaping settings.
type SecurityConfig struct {
	CorsAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	// RateLimitRPS of 0 disables rate limiting.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10" validate:"gte=0"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20" validate:"gte=1"`
}

// EngineConfig holds suggestion engine behaviour switches.
type EngineConfig struct {
	// AgriWindowTiming places timing-based watering suggestions either
	// relative to the request time or on the window's own forecast hours.
	AgriWindowTiming string `envconfig:"AGRI_WINDOW_TIMING" default:"relative" validate:"oneof=relative forecast"`
}

// BatchConfig bounds the multi-location endpoint.
type BatchConfig struct {
	Concurrency  int `envconfig:"BATCH_CONCURRENCY" default:"8" validate:"gte=1,lte=256"`
	MaxLocations int `envconfig:"MAX_BATCH_LOCATIONS" default:"50" validate:"gte=1,lte=1000"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	EnableMetrics    bool   `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"activitycast" validate:"required"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrDotenv indicates a dotenv file exists but could not be read.
	ErrDotenv ConfigErrorType = "DOTENV_FAILED"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)

package core

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"activitycast/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "local",
		Service:     "activitycast",
		LogLevel:    "info",
		Server: config.ServerConfig{
			Port:            "8080",
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    DefaultMaxBodyBytes,
		},
		Security: config.SecurityConfig{
			CorsAllowedOrigins: []string{"*"},
		},
		Build: config.BuildInfo{Version: "test"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := NewServer(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

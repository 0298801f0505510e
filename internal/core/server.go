// Package core provides the API chassis for activitycast. It creates a chi
// router and enforces cross-cutting concerns (recovery, request IDs, logging,
// CORS, metrics, rate limiting and compression) before requests reach the
// domain handlers.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"activitycast/internal/config"
)

// Server encapsulates all dependencies for the API, allowing for easy
// injection during testing and distinct configuration per environment.
type Server struct {
	Config    *config.Config
	Logger    *slog.Logger
	Validator *Validator
	// Metrics is optional; nil disables request metrics.
	Metrics MetricsCollector
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler

	HealthProbes []HealthProbe

	// V1RouteRegistrars mount domain handlers under /v1. They are populated
	// by the entry point to avoid an import cycle with the handler packages.
	V1RouteRegistrars []func(chi.Router)

	limiter *clientLimiter
	router  *chi.Mux
}

// NewServer initializes dependencies and prepares the server for route
// mounting. It fails fast on missing critical dependencies.
//
// The caller mounts routes via MountRoutes after construction so tests can
// customize registration.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	s := &Server{
		Config:    cfg,
		Logger:    logger,
		Validator: NewValidator(logger),
		router:    chi.NewRouter(),
	}
	if cfg.Security.RateLimitRPS > 0 {
		s.limiter = newClientLimiter(cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)
	}

	return s, nil
}

// Handler returns the http.Handler for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown releases server resources. The HTTP listener itself is owned and
// drained by the caller.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.InfoContext(ctx, "server shutdown initiated")
	if s.limiter != nil {
		s.limiter.reset()
	}
	s.Logger.InfoContext(ctx, "server shutdown complete")
	return nil
}

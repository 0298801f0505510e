package suggest

import (
	"context"
	"log/slog"
	"time"

	"activitycast/internal/scoring"
	"activitycast/internal/types"
)

// AgriculturalGenerator produces smart suggestions from a processed
// agricultural forecast. Implemented by agri.Generator.
type AgriculturalGenerator interface {
	Generate(forecast *types.AgriculturalForecast, now time.Time, locationName string) ([]types.SmartActivitySuggestion, error)
}

// Observer receives engine outcomes. Implemented by core.PrometheusMetrics.
type Observer interface {
	ObserveSuggestions(base, alerts, smart int)
	ObserveAgriculturalDegradation()
}

type nopObserver struct{}

func (nopObserver) ObserveSuggestions(int, int, int) {}
func (nopObserver) ObserveAgriculturalDegradation() {}

// Engine aggregates base suggestions, alerts and smart suggestions for one
// location. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	agri     AgriculturalGenerator
	logger   *slog.Logger
	clock    types.Clock
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used when a request carries no current time.
func WithClock(c types.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithObserver attaches an outcome observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEngine creates an Engine. agri may be nil, in which case smart
// suggestions are never produced.
func NewEngine(agri AgriculturalGenerator, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		agri:     agri,
		logger:   logger,
		clock:    types.RealClock{},
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Suggest evaluates a request. It never fails: missing slice values skip the
// slice and agricultural failures degrade to an empty smart suggestion list.
func (e *Engine) Suggest(ctx context.Context, req types.SuggestionRequest) *types.EnhancedSuggestionResult {
	logger := types.LoggerFromContext(ctx, e.logger)

	now := req.CurrentTime
	if now.IsZero() {
		now = e.clock.Now()
	}

	resolver := newAQIResolver(req.AQISeries, req.CurrentAQI)
	suggestions := BaseSuggestions(req.Forecast, resolver.at)

	weather := AnalyzeDisruptions(req.Forecast.List)
	var air []types.AirQualityAlert
	if scoring.ValidAQI(req.CurrentAQI) {
		air = AirQualityAlerts(req.CurrentAQI, req.AQIHistory, now.UTC().Format(time.RFC3339))
	}

	alerts := make([]types.Alert, 0, len(weather)+len(air))
	for _, a := range weather {
		alerts = append(alerts, a)
	}
	for _, a := range air {
		alerts = append(alerts, a)
	}

	slices := req.Forecast.List
	if slices == nil {
		slices = []types.ForecastSlice{}
	}

	result := &types.EnhancedSuggestionResult{
		Suggestions: suggestions,
		Alerts:      alerts,
		Forecast:    slices,
	}

	if e.agri != nil && req.LocationName != "" && (req.Agricultural != nil || req.AgriculturalErr != nil) {
		smart, err := e.smartSuggestions(req, now)
		if err != nil {
			logger.WarnContext(ctx, "agricultural suggestions unavailable, continuing without them",
				"location", req.LocationName,
				"error", err,
			)
			e.observer.ObserveAgriculturalDegradation()
			smart = []types.SmartActivitySuggestion{}
		}
		result.SmartSuggestions = smart
	}

	e.observer.ObserveSuggestions(len(result.Suggestions), len(result.Alerts), len(result.SmartSuggestions))
	return result
}

func (e *Engine) smartSuggestions(req types.SuggestionRequest, now time.Time) ([]types.SmartActivitySuggestion, error) {
	if req.AgriculturalErr != nil {
		return nil, req.AgriculturalErr
	}
	return e.agri.Generate(req.Agricultural, now, req.LocationName)
}

// Package handlers contains the HTTP handler implementations for the
// activitycast API:
//   - Single-location suggestions (POST /v1/suggestions)
//   - Multi-location suggestions (POST /v1/suggestions/batch)
//   - Agricultural forecast processing (POST /v1/agriculture/forecast)
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"activitycast/internal/agri"
	"activitycast/internal/core"
	"activitycast/internal/types"
)

// SuggestionEngine is the contract for the suggestion aggregator. It is
// defined locally so tests can inject a double.
type SuggestionEngine interface {
	Suggest(ctx context.Context, req types.SuggestionRequest) *types.EnhancedSuggestionResult
}

// AgriculturalProcessor turns a raw provider payload into an agricultural
// forecast.
type AgriculturalProcessor interface {
	Process(raw agri.RawForecast, now time.Time) (*types.AgriculturalForecast, error)
}

// SuggestionsRequest is the body of POST /v1/suggestions and one item of a
// batch. The forecast and agricultural payloads are accepted in the
// provider's own shape.
type SuggestionsRequest struct {
	Forecast     types.ForecastSeries    `json:"forecast"`
	AirQuality   types.AirQualityReading `json:"air_quality"`
	AQIHistory   []int                   `json:"aqi_history,omitempty" validate:"omitempty,dive,min=1,max=5"`
	AQISeries    []types.AQISample       `json:"aqi_series,omitempty" validate:"omitempty,dive"`
	CurrentTime  string                  `json:"current_time,omitempty"`
	Agricultural *agri.RawForecast       `json:"agricultural,omitempty"`
	LocationName string                  `json:"location_name,omitempty"`
}

// BatchItem is one location in a batch request.
type BatchItem struct {
	ID string `json:"id"`
	SuggestionsRequest
}

// BatchRequest is the body of POST /v1/suggestions/batch.
type BatchRequest struct {
	Locations []BatchItem `json:"locations"`
}

// BatchResponse maps item IDs to results or per-item errors. A failed item
// never fails the whole batch.
type BatchResponse struct {
	Results map[string]*types.EnhancedSuggestionResult `json:"results"`
	Errors  map[string]core.ErrorDetail                `json:"errors,omitempty"`
}

// Limits bounds request handling.
type Limits struct {
	MaxBodyBytes     int64
	BatchConcurrency int
	MaxBatchItems    int
}

// DefaultLimits mirrors the configuration defaults.
var DefaultLimits = Limits{
	MaxBodyBytes:     core.DefaultMaxBodyBytes,
	BatchConcurrency: 8,
	MaxBatchItems:    50,
}

// SuggestionHandler maps HTTP requests to the suggestion engine.
type SuggestionHandler struct {
	engine    SuggestionEngine
	processor AgriculturalProcessor
	validator *core.Validator
	logger    *slog.Logger
	clock     types.Clock
	limits    Limits
}

// NewSuggestionHandler creates a SuggestionHandler. Zero-valued limits fall
// back to DefaultLimits.
func NewSuggestionHandler(
	engine SuggestionEngine,
	processor AgriculturalProcessor,
	val *core.Validator,
	logger *slog.Logger,
	limits Limits,
) *SuggestionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if limits.MaxBodyBytes <= 0 {
		limits.MaxBodyBytes = DefaultLimits.MaxBodyBytes
	}
	if limits.BatchConcurrency <= 0 {
		limits.BatchConcurrency = DefaultLimits.BatchConcurrency
	}
	if limits.MaxBatchItems <= 0 {
		limits.MaxBatchItems = DefaultLimits.MaxBatchItems
	}
	return &SuggestionHandler{
		engine:    engine,
		processor: processor,
		validator: val,
		logger:    logger,
		clock:     types.RealClock{},
		limits:    limits,
	}
}

// WithClock replaces the clock used when a request has no current_time.
func (h *SuggestionHandler) WithClock(c types.Clock) *SuggestionHandler {
	h.clock = c
	return h
}

// RegisterRoutes mounts the suggestion endpoints onto the /v1 router.
func (h *SuggestionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/suggestions", func(r chi.Router) {
		r.Post("/", h.HandleSuggest)
		r.Post("/batch", h.HandleBatch)
	})
	r.Post("/agriculture/forecast", h.HandleAgriculture)
}

// HandleSuggest handles POST /v1/suggestions.
func (h *SuggestionHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestionsRequest
	if err := core.DecodeJSONWithLimit(w, r, &req, h.limits.MaxBodyBytes, core.AllowUnknownFields()); err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := h.Evaluate(r.Context(), req)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: result})
}

// Evaluate validates req, processes its agricultural payload and runs the
// engine. Errors are *types.AppError.
func (h *SuggestionHandler) Evaluate(ctx context.Context, req SuggestionsRequest) (*types.EnhancedSuggestionResult, error) {
	engineReq, err := h.buildRequest(req)
	if err != nil {
		return nil, err
	}
	return h.engine.Suggest(ctx, engineReq), nil
}

// HandleBatch handles POST /v1/suggestions/batch.
//  1. Reject batches above MaxBatchItems, and missing or duplicate IDs.
//  2. Evaluate items with at most BatchConcurrency in flight.
//  3. Report per-item failures in the errors map.
func (h *SuggestionHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := core.DecodeJSONWithLimit(w, r, &req, h.limits.MaxBodyBytes, core.AllowUnknownFields()); err != nil {
		core.Error(w, r, err)
		return
	}

	if len(req.Locations) > h.limits.MaxBatchItems {
		core.Error(w, r, types.NewAppErrorWithDetails(
			types.ErrCodeValidationBatchSize,
			fmt.Sprintf("batch size exceeds maximum of %d locations", h.limits.MaxBatchItems),
			nil,
			map[string]any{"max": h.limits.MaxBatchItems, "got": len(req.Locations)},
		))
		return
	}

	seen := make(map[string]struct{}, len(req.Locations))
	for i, item := range req.Locations {
		if item.ID == "" {
			core.Error(w, r, types.NewAppErrorWithDetails(
				types.ErrCodeValidationMissingField,
				"every location requires an id",
				nil,
				map[string]any{"index": i},
			))
			return
		}
		if _, dup := seen[item.ID]; dup {
			core.Error(w, r, types.NewAppErrorWithDetails(
				types.ErrCodeValidationInvalidRequest,
				"location ids must be unique",
				nil,
				map[string]any{"id": item.ID},
			))
			return
		}
		seen[item.ID] = struct{}{}
	}

	resp := BatchResponse{
		Results: make(map[string]*types.EnhancedSuggestionResult, len(req.Locations)),
		Errors:  make(map[string]core.ErrorDetail),
	}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(r.Context())
	g.SetLimit(h.limits.BatchConcurrency)

	for _, item := range req.Locations {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			result, err := h.Evaluate(gCtx, item.SuggestionsRequest)
			if err != nil {
				// Item failures stay local to the item.
				mu.Lock()
				resp.Errors[item.ID] = errorDetail(err)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			resp.Results[item.ID] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeInternalUnexpected, "batch evaluation aborted", err))
		return
	}

	if len(resp.Errors) > 0 {
		types.LoggerFromContext(r.Context(), h.logger).WarnContext(r.Context(), "batch completed with item errors",
			slog.Int("items", len(req.Locations)),
			slog.Int("failed", len(resp.Errors)),
		)
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: resp})
}

// AgricultureRequest is the body of POST /v1/agriculture/forecast.
type AgricultureRequest struct {
	Forecast    agri.RawForecast `json:"forecast"`
	CurrentTime string           `json:"current_time,omitempty"`
}

// HandleAgriculture handles POST /v1/agriculture/forecast.
func (h *SuggestionHandler) HandleAgriculture(w http.ResponseWriter, r *http.Request) {
	var req AgricultureRequest
	if err := core.DecodeJSONWithLimit(w, r, &req, h.limits.MaxBodyBytes, core.AllowUnknownFields()); err != nil {
		core.Error(w, r, err)
		return
	}

	now, err := h.parseTime(req.CurrentTime)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	forecast, err := h.process(req.Forecast, now)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: forecast})
}

// buildRequest validates a request and converts it into an engine request.
func (h *SuggestionHandler) buildRequest(req SuggestionsRequest) (types.SuggestionRequest, error) {
	if h.validator != nil {
		if err := h.validator.ValidateStruct(req); err != nil {
			return types.SuggestionRequest{}, err
		}
	}

	now, err := h.parseTime(req.CurrentTime)
	if err != nil {
		return types.SuggestionRequest{}, err
	}

	out := types.SuggestionRequest{
		Forecast:     req.Forecast,
		CurrentAQI:   req.AirQuality.AQI,
		AQIHistory:   req.AQIHistory,
		AQISeries:    req.AQISeries,
		CurrentTime:  now,
		LocationName: req.LocationName,
	}

	if req.Agricultural != nil {
		out.Agricultural, out.AgriculturalErr = h.process(*req.Agricultural, now)
	}
	return out, nil
}

func (h *SuggestionHandler) process(raw agri.RawForecast, now time.Time) (*types.AgriculturalForecast, error) {
	if h.processor == nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "agricultural processing is not configured", nil)
	}
	forecast, err := h.processor.Process(raw, now)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeAgriculturalMalformed, "agricultural data could not be processed", err)
	}
	return forecast, nil
}

// parseTime reads an RFC3339 timestamp, defaulting to the handler clock.
func (h *SuggestionHandler) parseTime(s string) (time.Time, error) {
	if s == "" {
		return h.clock.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, types.NewAppErrorWithDetails(
			types.ErrCodeValidationInvalidTime,
			"current_time must be a valid RFC3339 timestamp",
			err,
			map[string]any{"current_time": s},
		)
	}
	return t, nil
}

// errorDetail renders an item error without exposing wrapped causes.
func errorDetail(err error) core.ErrorDetail {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return core.ErrorDetail{Code: string(appErr.Code), Message: appErr.Message, Details: appErr.Details}
	}
	return core.ErrorDetail{Code: string(types.ErrCodeInternalUnexpected), Message: "an unexpected error occurred"}
}

package handlers

import (
	"context"
	"errors"
	"time"

	"activitycast/internal/types"
)

// EngineProbe is a core.HealthProbe that runs the engine on a one-slice
// forecast and checks a result comes back.
type EngineProbe struct {
	Engine SuggestionEngine
}

// Name implements core.HealthProbe.
func (p EngineProbe) Name() string { return "engine" }

// Check implements core.HealthProbe.
func (p EngineProbe) Check(ctx context.Context) error {
	if p.Engine == nil {
		return errors.New("engine not configured")
	}
	temp, wind := 18.0, 3.0
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	req := types.SuggestionRequest{
		Forecast: types.ForecastSeries{
			List: []types.ForecastSlice{{
				Dt:   now.Unix(),
				Main: types.MainReadings{Temp: &temp},
				Wind: types.WindReadings{Speed: &wind},
			}},
			City: types.Location{Name: "probe"},
		},
		CurrentAQI:  1,
		CurrentTime: now,
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	result := p.Engine.Suggest(ctx, req)
	if result == nil || len(result.Suggestions) == 0 {
		return errors.New("engine returned no suggestions for a benign forecast")
	}
	return nil
}

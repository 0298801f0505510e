package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitycast/internal/types"
)

func TestAnalyzeDisruptions(t *testing.T) {
	t.Run("calm forecast", func(t *testing.T) {
		alerts := AnalyzeDisruptions([]types.ForecastSlice{slice(0, 20, 5, 0), slice(3, 18, 6, 0)})
		assert.Empty(t, alerts)
		assert.NotNil(t, alerts)
	})

	t.Run("single pair raises all three in order", func(t *testing.T) {
		next := withRain(slice(3, 8, 30, 100), 6)
		alerts := AnalyzeDisruptions([]types.ForecastSlice{slice(0, 20, 5, 0), next})

		require.Len(t, alerts, 3)
		assert.Equal(t, []string{"Outdoor"}, alerts[0].AffectedActivities)
		assert.Equal(t, []string{"Outdoor", "Cycling", "Running"}, alerts[1].AffectedActivities)
		assert.Equal(t, []string{"Outdoor", "Dining", "Running"}, alerts[2].AffectedActivities)
		for _, a := range alerts {
			assert.Equal(t, types.AlertTypeWeather, a.Type)
			assert.Equal(t, types.SeverityModerate, a.Severity)
			assert.Equal(t, next.DtTxt, a.StartTime)
			assert.NotEmpty(t, a.Message)
		}
	})

	t.Run("thresholds are strict", func(t *testing.T) {
		alerts := AnalyzeDisruptions([]types.ForecastSlice{
			slice(0, 20, 5, 0),
			withRain(slice(3, 10, 25, 0), 5),
		})
		assert.Empty(t, alerts)
	})

	t.Run("chronological across pairs", func(t *testing.T) {
		alerts := AnalyzeDisruptions([]types.ForecastSlice{
			slice(0, 20, 5, 0),
			slice(3, 20, 30, 0),
			slice(6, 5, 5, 0),
		})

		require.Len(t, alerts, 2)
		assert.Equal(t, slice(3, 0, 0, 0).DtTxt, alerts[0].StartTime)
		assert.Contains(t, alerts[0].AffectedActivities, "Cycling")
		assert.Equal(t, slice(6, 0, 0, 0).DtTxt, alerts[1].StartTime)
		assert.Equal(t, []string{"Outdoor"}, alerts[1].AffectedActivities)
	})

	t.Run("missing temperature skips only the drop check", func(t *testing.T) {
		next := slice(3, 0, 40, 0)
		next.Main.Temp = nil
		alerts := AnalyzeDisruptions([]types.ForecastSlice{slice(0, 20, 5, 0), next})

		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0].AffectedActivities, "Cycling")
	})

	t.Run("single slice", func(t *testing.T) {
		assert.Empty(t, AnalyzeDisruptions([]types.ForecastSlice{slice(0, 20, 5, 0)}))
		assert.Empty(t, AnalyzeDisruptions(nil))
	})
}

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitycast/internal/types"
)

const alertStart = "2024-06-01T12:00:00Z"

func TestAirQualityAlerts(t *testing.T) {
	t.Run("poor and worsening", func(t *testing.T) {
		alerts := AirQualityAlerts(4, []int{2, 3}, alertStart)

		require.Len(t, alerts, 2)
		assert.Equal(t, types.TrendStable, alerts[0].Trend)
		assert.Equal(t, poorAirMessage, alerts[0].Message)
		assert.Equal(t, types.TrendWorsening, alerts[1].Trend)
		for _, a := range alerts {
			assert.Equal(t, types.AlertTypeAir, a.Type)
			assert.Equal(t, 4, a.AQI)
			assert.Equal(t, alertStart, a.StartTime)
		}
	})

	t.Run("compares with second to last entry", func(t *testing.T) {
		// Last entry is 1, second to last is 3.
		alerts := AirQualityAlerts(2, []int{5, 3, 1}, alertStart)

		require.Len(t, alerts, 1)
		assert.Equal(t, types.TrendImproving, alerts[0].Trend)
	})

	t.Run("equal is stable", func(t *testing.T) {
		alerts := AirQualityAlerts(2, []int{2, 2}, alertStart)

		require.Len(t, alerts, 1)
		assert.Equal(t, types.TrendStable, alerts[0].Trend)
		assert.Contains(t, alerts[0].Message, stableAirMessage)
	})

	t.Run("short history has no trend", func(t *testing.T) {
		assert.Empty(t, AirQualityAlerts(3, []int{1}, alertStart))
		assert.Empty(t, AirQualityAlerts(3, nil, alertStart))
	})

	t.Run("threshold alone", func(t *testing.T) {
		alerts := AirQualityAlerts(5, nil, alertStart)

		require.Len(t, alerts, 1)
		assert.Equal(t, types.TrendStable, alerts[0].Trend)
		assert.Equal(t, 5, alerts[0].AQI)
	})
}

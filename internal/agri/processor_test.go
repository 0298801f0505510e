package agri

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitycast/internal/types"
)

// rawPayload is a two-day forecast at UTC+2 with one null humidity entry.
const rawPayload = `{
  "utc_offset_seconds": 7200,
  "timezone": "Europe/Paris",
  "hourly": {
    "time": ["2024-06-01T11:00", "2024-06-01T12:00", "2024-06-01T13:00", "2024-06-02T12:00"],
    "vapour_pressure_deficit": [0.8, 1.7, 0.3, 0.9],
    "relative_humidity_2m": [60, null, 80, 55],
    "dew_point_2m": [16, 12, 9, 15]
  },
  "daily": {
    "time": ["2024-06-01", "2024-06-02"],
    "et0_fao_evapotranspiration": [5.5, null],
    "precipitation_hours": [0, 6]
  }
}`

func decodeRaw(t *testing.T) RawForecast {
	t.Helper()
	var raw RawForecast
	require.NoError(t, json.Unmarshal([]byte(rawPayload), &raw))
	return raw
}

func TestProcess(t *testing.T) {
	raw := decodeRaw(t)
	// 10:30 UTC is 12:30 local.
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	fc, err := NewProcessor().Process(raw, now)
	require.NoError(t, err)

	require.Len(t, fc.Hourly, 4)
	assert.Equal(t, 7200, fc.TimezoneOffset)
	assert.True(t, fc.Hourly[0].Time.Equal(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)))

	// Null humidity counts as zero.
	assert.Equal(t, 0.0, fc.Hourly[1].RelativeHumidity)
	assert.Equal(t, types.StressHigh, fc.Hourly[1].PlantStressLevel)
	assert.Equal(t, types.StressLow, fc.Hourly[2].PlantStressLevel)
	assert.Equal(t, 92.0, fc.Hourly[0].WateringEfficiency)
	assert.Equal(t, 97.0, fc.Hourly[0].OutdoorComfortIndex)

	require.NotNil(t, fc.Current)
	assert.True(t, fc.Current.Time.Equal(fc.Hourly[1].Time))

	require.Len(t, fc.Daily, 2)
	assert.Equal(t, types.DemandModerate, fc.Daily[0].WaterDemandLevel)
	assert.Equal(t, 0.0, fc.Daily[1].ET0)
	assert.Equal(t, types.DemandLow, fc.Daily[1].WaterDemandLevel)
	assert.Contains(t, fc.Daily[1].IrrigationRecommendation, "Natural irrigation")

	assert.InDelta(t, 5.5, fc.WeeklySummary.TotalET0, 1e-9)
	assert.InDelta(t, 6.0, fc.WeeklySummary.RainHours, 1e-9)
	assert.False(t, fc.WeeklySummary.IrrigationNeeded)
	assert.NotEmpty(t, fc.GardeningInsights.StressWarnings)
	assert.NotEmpty(t, fc.GardeningInsights.OptimalWateringWindows)
}

func TestProcessCurrentHour(t *testing.T) {
	raw := decodeRaw(t)

	t.Run("falls back to same hour on another day", func(t *testing.T) {
		// 10:00 UTC on June 3rd is 12:00 local; no entry for that date.
		fc, err := NewProcessor().Process(raw, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, fc.Current)
		assert.True(t, fc.Current.Time.Equal(fc.Hourly[1].Time), "first 12:00 entry")
	})

	t.Run("prefers the same date", func(t *testing.T) {
		fc, err := NewProcessor().Process(raw, time.Date(2024, 6, 2, 10, 15, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, fc.Current)
		assert.True(t, fc.Current.Time.Equal(fc.Hourly[3].Time))
	})

	t.Run("nil when the hour is absent", func(t *testing.T) {
		fc, err := NewProcessor().Process(raw, time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Nil(t, fc.Current)
	})
}

func TestProcessMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  RawForecast
	}{
		{"hourly label", RawForecast{Hourly: RawHourly{Time: []string{"yesterday"}}}},
		{"daily label", RawForecast{Daily: RawDaily{Time: []string{"2024/06/01"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProcessor().Process(tt.raw, time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedForecast))
		})
	}
}

func TestProcessEmpty(t *testing.T) {
	fc, err := NewProcessor().Process(RawForecast{}, time.Now())
	require.NoError(t, err)

	assert.Nil(t, fc.Current)
	assert.Empty(t, fc.Hourly)
	assert.Empty(t, fc.Daily)
	assert.Empty(t, fc.GardeningInsights.OptimalWateringWindows)
	assert.Empty(t, fc.GardeningInsights.StressWarnings)
	assert.Empty(t, fc.GardeningInsights.ComfortPeriods)
}

func TestProcessShortArrays(t *testing.T) {
	raw := RawForecast{
		Hourly: RawHourly{Time: []string{"2024-06-01T00:00", "2024-06-01T01:00"}},
	}

	fc, err := NewProcessor().Process(raw, time.Now())
	require.NoError(t, err)
	require.Len(t, fc.Hourly, 2)
	assert.Equal(t, 0.0, fc.Hourly[1].VaporPressureDeficit)
	assert.Equal(t, types.StressLow, fc.Hourly[1].PlantStressLevel)
}

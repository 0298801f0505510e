package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitycast/internal/types"
)

func TestBaseSuggestionsRunning(t *testing.T) {
	first, second := slice(0, 18, 5, 0), slice(3, 18, 5, 0)
	got := BaseSuggestions(series(first, second), constantAQI(2))

	run, ok := find(got, ActivityRunning, first.DtTxt)
	require.True(t, ok)
	assert.Equal(t, 1.0, run.Confidence)
	assert.Equal(t, second.DtTxt, run.EndTime)
	assert.NotContains(t, run.Description, "Rain expected later")
	require.Len(t, run.Reasons, 4)
	assert.Contains(t, run.Reasons[0], "18.0")
	assert.Contains(t, run.Reasons[1], "5.0")
}

func TestBaseSuggestionsRunningBands(t *testing.T) {
	tests := []struct {
		name  string
		s     types.ForecastSlice
		aqi   int
		match bool
	}{
		{"lower temperature bound", slice(0, 10, 5, 0), 1, true},
		{"upper temperature bound", slice(0, 25, 5, 0), 1, true},
		{"too cold", slice(0, 9.9, 5, 0), 1, false},
		{"too hot", slice(0, 25.1, 5, 0), 1, false},
		{"wind at limit", slice(0, 18, 15, 0), 1, false},
		{"drizzle under limit", withRain(slice(0, 18, 5, 0), 0.1), 1, true},
		{"rain at limit", withRain(slice(0, 18, 5, 0), 0.2), 1, false},
		{"moderate air", slice(0, 18, 5, 0), 3, true},
		{"poor air", slice(0, 18, 5, 0), 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BaseSuggestions(series(tt.s), constantAQI(tt.aqi))
			assert.Equal(t, tt.match, contains(activities(got), ActivityRunning))
		})
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func TestBaseSuggestionsRainLookAhead(t *testing.T) {
	first := slice(0, 20, 5, 0)
	got := BaseSuggestions(series(first, withRain(slice(3, 20, 5, 0), 1)), constantAQI(3))

	run, ok := find(got, ActivityRunning, first.DtTxt)
	require.True(t, ok)
	assert.Contains(t, run.Description, "Rain expected later")

	_, ok = find(got, ActivityOutdoorDining, first.DtTxt)
	assert.False(t, ok, "dining is suppressed when the next slice has rain")
}

func TestBaseSuggestionsLastSliceWindow(t *testing.T) {
	only := slice(0, 20, 5, 0)
	got := BaseSuggestions(series(only), constantAQI(1))

	require.NotEmpty(t, got)
	for _, s := range got {
		assert.Equal(t, only.DtTxt, s.StartTime)
		assert.Equal(t, "2024-06-01 14:00:00", s.EndTime)
	}
}

func TestBaseSuggestionsPhotography(t *testing.T) {
	t.Run("partly cloudy daylight", func(t *testing.T) {
		got := BaseSuggestions(series(slice(0, 5, 20, 50)), constantAQI(3))
		assert.Equal(t, []string{ActivityPhotography}, activities(got))
	})

	t.Run("night in local time", func(t *testing.T) {
		s := series(slice(0, 5, 20, 50))
		s.City.TimezoneOffset = 10 * 3600
		got := BaseSuggestions(s, constantAQI(3))
		assert.Empty(t, got)
	})

	t.Run("overcast", func(t *testing.T) {
		got := BaseSuggestions(series(slice(0, 5, 20, 71)), constantAQI(3))
		assert.Empty(t, got)
	})
}

func TestBaseSuggestionsAirQualitySensitive(t *testing.T) {
	got := BaseSuggestions(series(slice(0, 0, 20, 0)), constantAQI(2))
	assert.Equal(t, []string{ActivityAirQualitySensitive}, activities(got))

	got = BaseSuggestions(series(slice(0, 0, 20, 0)), constantAQI(3))
	assert.Empty(t, got)
}

func TestBaseSuggestionsPostRain(t *testing.T) {
	wet := withRain(slice(0, 0, 20, 100), 2)
	dry := slice(3, 0, 20, 100)
	got := BaseSuggestions(series(wet, dry), constantAQI(4))

	require.Len(t, got, 1)
	assert.Equal(t, ActivityPostRain, got[0].Activity)
	assert.Equal(t, 0.8, got[0].Confidence)
	assert.Equal(t, dry.DtTxt, got[0].StartTime)
	assert.Equal(t, "2024-06-01 17:00:00", got[0].EndTime)
	assert.Contains(t, got[0].Reasons[0], "2.0")
}

func TestBaseSuggestionsSkipsIncompleteSlices(t *testing.T) {
	noTemp := slice(0, 20, 5, 50)
	noTemp.Main.Temp = nil
	noWind := slice(3, 20, 5, 50)
	noWind.Wind.Speed = nil

	got := BaseSuggestions(series(noTemp, noWind), constantAQI(1))
	assert.Empty(t, got)

	got = BaseSuggestions(series(slice(0, 20, 5, 50)), func(_ time.Time) *int { return nil })
	assert.Empty(t, got)
}

func TestBaseSuggestionsPostRainSkipsIncompleteSlice(t *testing.T) {
	wet := withRain(slice(0, 0, 20, 100), 2)
	dry := slice(3, 0, 20, 100)
	dry.Main.Temp = nil

	assert.Empty(t, BaseSuggestions(series(wet, dry), constantAQI(4)))
	assert.Empty(t, BaseSuggestions(series(wet, slice(3, 0, 20, 100)), func(time.Time) *int { return nil }))
}

func TestBaseSuggestionsEndNeverBeforeStart(t *testing.T) {
	s := series(
		slice(0, 20, 5, 50),
		withRain(slice(3, 18, 5, 40), 1),
		slice(6, 16, 3, 30),
		slice(9, 22, 4, 60),
	)

	for _, sg := range BaseSuggestions(s, constantAQI(1)) {
		assert.GreaterOrEqual(t, sg.EndTime, sg.StartTime, sg.Activity)
	}
}

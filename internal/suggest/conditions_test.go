package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"activitycast/internal/types"
)

func TestExtractConditions(t *testing.T) {
	t.Run("precipitation defaults to zero", func(t *testing.T) {
		c := ExtractConditions(slice(0, 20, 5, 10), intPtr(2), 0)

		assert.Equal(t, 0.0, c.Precipitation)
		assert.Empty(t, c.PrecipitationType)
		assert.Equal(t, types.DefaultVisibility, c.Visibility)
		assert.Equal(t, 2, *c.AQI)
		assert.Equal(t, 20.0, *c.Temp)
		assert.Equal(t, 5.0, *c.WindSpeed)
	})

	t.Run("rain object sets type even without volume", func(t *testing.T) {
		s := slice(0, 20, 5, 10)
		s.Rain = &types.Precipitation{}
		c := ExtractConditions(s, nil, 0)

		assert.Equal(t, 0.0, c.Precipitation)
		assert.Equal(t, types.PrecipitationRain, c.PrecipitationType)
		assert.Nil(t, c.AQI)
	})

	t.Run("snow volume", func(t *testing.T) {
		s := slice(0, -2, 5, 90)
		s.Snow = &types.Precipitation{ThreeHour: f64(3.5)}
		c := ExtractConditions(s, nil, 0)

		assert.Equal(t, 3.5, c.Precipitation)
		assert.Equal(t, types.PrecipitationSnow, c.PrecipitationType)
	})

	t.Run("missing readings stay nil", func(t *testing.T) {
		c := ExtractConditions(types.ForecastSlice{DtTxt: "2024-06-01 12:00:00"}, nil, 0)

		assert.Nil(t, c.Temp)
		assert.Nil(t, c.WindSpeed)
		assert.Equal(t, types.TimeOfDayDay, c.TimeOfDay)
	})
}

func TestClassifyTimeOfDay(t *testing.T) {
	tests := []struct {
		name   string
		utc    time.Time
		offset int
		want   types.TimeOfDay
	}{
		{"start of day", time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC), 0, types.TimeOfDayDay},
		{"last day hour", time.Date(2024, 6, 1, 17, 59, 0, 0, time.UTC), 0, types.TimeOfDayDay},
		{"evening", time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC), 0, types.TimeOfDayNight},
		{"before dawn", time.Date(2024, 6, 1, 5, 59, 0, 0, time.UTC), 0, types.TimeOfDayNight},
		{"utc noon is night in UTC+10", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), 10 * 3600, types.TimeOfDayNight},
		{"utc midnight is afternoon in UTC-8", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), -8 * 3600, types.TimeOfDayDay},
		{"utc 3am is night in UTC-5", time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC), -5 * 3600, types.TimeOfDayNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTimeOfDay(tt.utc, tt.offset))
		})
	}
}

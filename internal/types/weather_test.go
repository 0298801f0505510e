package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForecastSliceTime(t *testing.T) {
	t.Run("epoch wins", func(t *testing.T) {
		s := ForecastSlice{Dt: 1700000000, DtTxt: "1999-01-01 00:00:00"}
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), s.Time())
	})

	t.Run("falls back to text", func(t *testing.T) {
		s := ForecastSlice{DtTxt: "2024-06-01 12:00:00"}
		assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), s.Time())
	})

	t.Run("unreadable is zero", func(t *testing.T) {
		assert.True(t, ForecastSlice{DtTxt: "garbage"}.Time().IsZero())
	})
}

func TestForecastSliceLabel(t *testing.T) {
	assert.Equal(t, "2024-06-01 12:00:00", ForecastSlice{DtTxt: "2024-06-01 12:00:00"}.Label())

	dt := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, "2024-06-01 15:00:00", ForecastSlice{Dt: dt}.Label())
	assert.Equal(t, "", ForecastSlice{}.Label())
}

func TestPrecipitationVolume(t *testing.T) {
	v := 1.5

	vol, kind, ok := ForecastSlice{Rain: &Precipitation{ThreeHour: &v}}.PrecipitationVolume()
	assert.True(t, ok)
	assert.Equal(t, PrecipitationRain, kind)
	assert.Equal(t, 1.5, vol)

	vol, kind, ok = ForecastSlice{Snow: &Precipitation{}}.PrecipitationVolume()
	assert.True(t, ok)
	assert.Equal(t, PrecipitationSnow, kind)
	assert.Equal(t, 0.0, vol)

	_, kind, ok = ForecastSlice{}.PrecipitationVolume()
	assert.False(t, ok)
	assert.Empty(t, kind)
}

func TestFixedZone(t *testing.T) {
	assert.Equal(t, time.UTC, FixedZone(0))

	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, FixedZone(3600)).Zone()
	assert.Equal(t, 3600, offset)
}

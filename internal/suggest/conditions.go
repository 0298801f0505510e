// Package suggest turns a forecast series and air quality readings into
// activity suggestions and planning alerts, and aggregates them with the
// agricultural suggestions into a single result.
package suggest

import (
	"time"

	"activitycast/internal/types"
)

// Daylight spans local hours [dayStartHour, dayEndHour).
const (
	dayStartHour = 6
	dayEndHour   = 18
)

// ExtractConditions flattens one slice into the fields the rules read.
// aqi is the AQI in force for the slice (nil when unknown). offsetSeconds is
// the location's UTC offset and is the only source of local time.
func ExtractConditions(slice types.ForecastSlice, aqi *int, offsetSeconds int) types.Conditions {
	precip, kind, _ := slice.PrecipitationVolume()

	return types.Conditions{
		Temp:              slice.Main.Temp,
		FeelsLike:         slice.Main.FeelsLike,
		WindSpeed:         slice.Wind.Speed,
		CloudCover:        slice.Clouds.All,
		Precipitation:     precip,
		PrecipitationType: kind,
		AQI:               aqi,
		Visibility:        types.DefaultVisibility,
		TimeOfDay:         ClassifyTimeOfDay(slice.Time(), offsetSeconds),
	}
}

// ClassifyTimeOfDay returns day for local hours in [6,18) and night otherwise.
func ClassifyTimeOfDay(t time.Time, offsetSeconds int) types.TimeOfDay {
	h := t.In(types.FixedZone(offsetSeconds)).Hour()
	if h >= dayStartHour && h < dayEndHour {
		return types.TimeOfDayDay
	}
	return types.TimeOfDayNight
}

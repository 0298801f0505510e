package suggest

import (
	"fmt"
	"time"

	"activitycast/internal/scoring"
	"activitycast/internal/types"
)

// Activity labels.
const (
	ActivityRunning             = "Running"
	ActivityOutdoorDining       = "Outdoor Dining"
	ActivityPhotography         = "Photography"
	ActivityAirQualitySensitive = "Air Quality Sensitive Activities"
	ActivityPostRain            = "Post-Rain Outdoor Activities"
)

// defaultWindow is used when a slice has no successor to bound it.
const defaultWindow = 2 * time.Hour

const (
	postRainConfidence = 0.8
	fullConfidence     = 1.0
)

// Rule bands.
const (
	runningTempMin   = 10.0
	runningTempMax   = 25.0
	runningWindMax   = 15.0
	runningPrecipMax = 0.2

	diningTempMin = 15.0
	diningTempMax = 28.0
	diningWindMax = 10.0

	photoCloudMin = 30.0
	photoCloudMax = 70.0
)

// slot is a slice paired with its extracted conditions.
type slot struct {
	slice types.ForecastSlice
	cond  types.Conditions
}

// complete reports whether every value the per-slice rules need is present.
func (s slot) complete() bool {
	return s.cond.Temp != nil && s.cond.WindSpeed != nil && s.cond.AQI != nil
}

// BaseSuggestions applies the per-slice activity rules to every slice and then
// the pairwise post-rain rule. Slices missing temperature, wind or AQI are
// skipped silently. aqiFor supplies the AQI in force for a slice time.
func BaseSuggestions(series types.ForecastSeries, aqiFor func(time.Time) *int) []types.ActivitySuggestion {
	offset := series.City.TimezoneOffset
	slots := make([]slot, len(series.List))
	for i, s := range series.List {
		slots[i] = slot{slice: s, cond: ExtractConditions(s, aqiFor(s.Time()), offset)}
	}

	suggestions := make([]types.ActivitySuggestion, 0)
	for i, cur := range slots {
		if !cur.complete() {
			continue
		}
		var next *slot
		if i+1 < len(slots) {
			next = &slots[i+1]
		}
		start, end := window(series.List, i)

		if s, ok := running(cur.cond, next); ok {
			suggestions = append(suggestions, withWindow(s, start, end))
		}
		if s, ok := outdoorDining(cur.cond, next); ok {
			suggestions = append(suggestions, withWindow(s, start, end))
		}
		if s, ok := photography(cur.cond); ok {
			suggestions = append(suggestions, withWindow(s, start, end))
		}
		if s, ok := airQualitySensitive(cur.cond); ok {
			suggestions = append(suggestions, withWindow(s, start, end))
		}
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i].complete() {
			continue
		}
		prev, cur := slots[i-1].cond, slots[i].cond
		if prev.Precipitation > 0 && cur.Precipitation == 0 {
			start, end := window(series.List, i)
			suggestions = append(suggestions, types.ActivitySuggestion{
				Activity:    ActivityPostRain,
				Description: "The rain has cleared. A good window for a walk or outdoor errands while the air is fresh.",
				Confidence:  postRainConfidence,
				Reasons: []string{
					fmt.Sprintf("Previous period had %.1f mm of precipitation", prev.Precipitation),
					"No precipitation expected now",
				},
				StartTime: start,
				EndTime:   end,
			})
		}
	}

	return suggestions
}

// window returns the validity window of slice i: its own label up to the next
// slice's label, or two hours past its start for the last slice.
func window(slices []types.ForecastSlice, i int) (string, string) {
	start := slices[i].Label()
	if i+1 < len(slices) {
		if end := slices[i+1].Label(); end != "" {
			return start, end
		}
	}
	t := slices[i].Time()
	if t.IsZero() {
		return start, start
	}
	return start, t.Add(defaultWindow).Format(types.ForecastTimeLayout)
}

func withWindow(s types.ActivitySuggestion, start, end string) types.ActivitySuggestion {
	s.StartTime = start
	s.EndTime = end
	return s
}

func nextHasRain(next *slot) bool {
	return next != nil && next.cond.Precipitation > 0
}

func running(c types.Conditions, next *slot) (types.ActivitySuggestion, bool) {
	temp, wind, aqi := *c.Temp, *c.WindSpeed, *c.AQI
	if temp < runningTempMin || temp > runningTempMax || wind >= runningWindMax ||
		c.Precipitation >= runningPrecipMax || aqi > scoring.ModerateAQIMax {
		return types.ActivitySuggestion{}, false
	}

	description := "Great conditions for a run: mild temperature, light wind and dry ground."
	if nextHasRain(next) {
		description += " Rain expected later, so plan a shorter route."
	}

	return types.ActivitySuggestion{
		Activity:    ActivityRunning,
		Description: description,
		Confidence:  fullConfidence,
		Reasons: []string{
			fmt.Sprintf("Comfortable temperature of %.1f°C", temp),
			fmt.Sprintf("Light wind at %.1f m/s", wind),
			fmt.Sprintf("Minimal precipitation (%.1f mm)", c.Precipitation),
			fmt.Sprintf("Air quality is %s (AQI %d)", scoring.AQILabel(aqi), aqi),
		},
	}, true
}

func outdoorDining(c types.Conditions, next *slot) (types.ActivitySuggestion, bool) {
	temp, wind := *c.Temp, *c.WindSpeed
	if temp < diningTempMin || temp > diningTempMax || wind >= diningWindMax ||
		c.Precipitation != 0 || nextHasRain(next) {
		return types.ActivitySuggestion{}, false
	}

	return types.ActivitySuggestion{
		Activity:    ActivityOutdoorDining,
		Description: "Pleasant weather for eating outside on a terrace or in the park.",
		Confidence:  fullConfidence,
		Reasons: []string{
			fmt.Sprintf("Pleasant temperature of %.1f°C", temp),
			fmt.Sprintf("Calm wind at %.1f m/s", wind),
			"No rain expected now or in the next period",
		},
	}, true
}

func photography(c types.Conditions) (types.ActivitySuggestion, bool) {
	if c.CloudCover < photoCloudMin || c.CloudCover > photoCloudMax || c.TimeOfDay != types.TimeOfDayDay {
		return types.ActivitySuggestion{}, false
	}

	return types.ActivitySuggestion{
		Activity:    ActivityPhotography,
		Description: "Partly cloudy daylight gives soft, diffused light and dramatic skies.",
		Confidence:  fullConfidence,
		Reasons: []string{
			fmt.Sprintf("Cloud cover at %.0f%% diffuses harsh sunlight", c.CloudCover),
			"Daylight hours",
		},
	}, true
}

func airQualitySensitive(c types.Conditions) (types.ActivitySuggestion, bool) {
	aqi := *c.AQI
	if aqi > scoring.CleanAQIMax {
		return types.ActivitySuggestion{}, false
	}

	return types.ActivitySuggestion{
		Activity:    ActivityAirQualitySensitive,
		Description: "Clean air makes this a good time for people with asthma or allergies to be active outdoors.",
		Confidence:  fullConfidence,
		Reasons: []string{
			fmt.Sprintf("Air quality is %s (AQI %d)", scoring.AQILabel(aqi), aqi),
		},
	}, true
}

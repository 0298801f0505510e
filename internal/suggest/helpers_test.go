package suggest

import (
	"time"

	"activitycast/internal/types"
)

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

// slice builds a forecast slice h hours after baseTime.
func slice(h int, temp, wind, clouds float64) types.ForecastSlice {
	at := baseTime.Add(time.Duration(h) * time.Hour)
	return types.ForecastSlice{
		Dt:     at.Unix(),
		DtTxt:  at.Format(types.ForecastTimeLayout),
		Main:   types.MainReadings{Temp: f64(temp), FeelsLike: f64(temp)},
		Wind:   types.WindReadings{Speed: f64(wind)},
		Clouds: types.CloudCover{All: clouds},
	}
}

func withRain(s types.ForecastSlice, mm float64) types.ForecastSlice {
	s.Rain = &types.Precipitation{ThreeHour: f64(mm)}
	return s
}

func series(slices ...types.ForecastSlice) types.ForecastSeries {
	return types.ForecastSeries{
		List: slices,
		City: types.Location{Name: "Lyon", TimezoneOffset: 0},
	}
}

func constantAQI(v int) func(time.Time) *int {
	return func(time.Time) *int { return intPtr(v) }
}

func activities(suggestions []types.ActivitySuggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Activity)
	}
	return out
}

func find(suggestions []types.ActivitySuggestion, activity, start string) (types.ActivitySuggestion, bool) {
	for _, s := range suggestions {
		if s.Activity == activity && s.StartTime == start {
			return s, true
		}
	}
	return types.ActivitySuggestion{}, false
}

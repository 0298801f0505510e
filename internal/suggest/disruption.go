package suggest

import (
	"fmt"

	"activitycast/internal/types"
)

// Transition thresholds between adjacent slices, in the units of the input.
const (
	TempDropThreshold  = 10.0
	HighWindThreshold  = 25.0
	HeavyRainThreshold = 5.0
)

// AnalyzeDisruptions scans adjacent slices for sharp transitions. A pair may
// raise a temperature-drop, a high-wind and a heavy-rain alert, in that order.
// A missing value only disables the checks that need it.
func AnalyzeDisruptions(slices []types.ForecastSlice) []types.WeatherAlert {
	alerts := make([]types.WeatherAlert, 0)

	for i := 1; i < len(slices); i++ {
		prev, curr := slices[i-1], slices[i]
		start := curr.Label()

		if prev.Main.Temp != nil && curr.Main.Temp != nil {
			drop := *prev.Main.Temp - *curr.Main.Temp
			if drop > TempDropThreshold {
				alerts = append(alerts, types.WeatherAlert{
					Type:               types.AlertTypeWeather,
					Message:            fmt.Sprintf("Temperature drops sharply by %.1f° (from %.1f° to %.1f°). Bring extra layers for outdoor plans.", drop, *prev.Main.Temp, *curr.Main.Temp),
					Severity:           types.SeverityModerate,
					AffectedActivities: []string{"Outdoor"},
					StartTime:          start,
				})
			}
		}

		if curr.Wind.Speed != nil && *curr.Wind.Speed > HighWindThreshold {
			alerts = append(alerts, types.WeatherAlert{
				Type:               types.AlertTypeWeather,
				Message:            fmt.Sprintf("High winds of %.1f expected. Outdoor cycling and running may be difficult.", *curr.Wind.Speed),
				Severity:           types.SeverityModerate,
				AffectedActivities: []string{"Outdoor", "Cycling", "Running"},
				StartTime:          start,
			})
		}

		if rain, _, ok := curr.PrecipitationVolume(); ok && rain > HeavyRainThreshold {
			alerts = append(alerts, types.WeatherAlert{
				Type:               types.AlertTypeWeather,
				Message:            fmt.Sprintf("Heavy precipitation of %.1f mm over 3 hours expected. Consider moving plans indoors.", rain),
				Severity:           types.SeverityModerate,
				AffectedActivities: []string{"Outdoor", "Dining", "Running"},
				StartTime:          start,
			})
		}
	}

	return alerts
}

package suggest

import (
	"fmt"

	"activitycast/internal/scoring"
	"activitycast/internal/types"
)

const (
	poorAirMessage      = "Air quality is poor. Consider indoor exercise instead of outdoor activities."
	worseningAirMessage = "Air quality is getting worse. Limit prolonged outdoor exertion, especially for sensitive groups."
	improvingAirMessage = "Air quality is improving. Outdoor conditions should get better over the next few hours."
	stableAirMessage    = "Air quality is holding steady."
)

// AirQualityAlerts classifies the current AQI and its trend. The threshold
// alert (AQI above 3) comes first; the trend alert compares against the
// second-to-last history entry and needs at least two entries.
func AirQualityAlerts(currentAQI int, history []int, start string) []types.AirQualityAlert {
	alerts := make([]types.AirQualityAlert, 0, 2)

	if scoring.IsPoorAQI(currentAQI) {
		alerts = append(alerts, types.AirQualityAlert{
			Type:      types.AlertTypeAir,
			Message:   poorAirMessage,
			AQI:       currentAQI,
			Trend:     types.TrendStable,
			StartTime: start,
		})
	}

	if len(history) >= 2 {
		previous := history[len(history)-2]
		alert := types.AirQualityAlert{
			Type:      types.AlertTypeAir,
			AQI:       currentAQI,
			StartTime: start,
		}
		switch {
		case currentAQI > previous:
			alert.Trend = types.TrendWorsening
			alert.Message = worseningAirMessage
		case currentAQI < previous:
			alert.Trend = types.TrendImproving
			alert.Message = improvingAirMessage
		default:
			alert.Trend = types.TrendStable
			alert.Message = fmt.Sprintf("%s Current level: %s.", stableAirMessage, scoring.AQILabel(currentAQI))
		}
		alerts = append(alerts, alert)
	}

	return alerts
}

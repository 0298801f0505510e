package agri

import (
	"time"

	"activitycast/internal/scoring"
	"activitycast/internal/types"
)

// Insight caps, applied in scan order.
const (
	maxWateringWindows = 5
	maxStressWarnings  = 10
	maxComfortPeriods  = 5
	maxBestDays        = 3
)

// Processor converts raw agricultural series into an AgriculturalForecast.
// It is stateless.
type Processor struct{}

// NewProcessor returns a Processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process derives per-hour and per-day scores, gardening insights and the
// weekly summary. now selects the current snapshot. Only unreadable time
// labels are an error; missing values count as zero.
func (p *Processor) Process(raw RawForecast, now time.Time) (*types.AgriculturalForecast, error) {
	zone := types.FixedZone(raw.UTCOffsetSeconds)

	hourly, err := processHourly(raw.Hourly, zone)
	if err != nil {
		return nil, err
	}
	daily, err := processDaily(raw.Daily, zone)
	if err != nil {
		return nil, err
	}

	return &types.AgriculturalForecast{
		Current: currentHour(hourly, now, zone),
		Hourly:  hourly,
		Daily:   daily,
		GardeningInsights: types.GardeningInsights{
			OptimalWateringWindows: WateringWindows(hourly),
			StressWarnings:         StressWarnings(hourly),
			ComfortPeriods:         ComfortPeriods(hourly),
		},
		WeeklySummary:  WeeklySummary(hourly, daily),
		TimezoneOffset: raw.UTCOffsetSeconds,
	}, nil
}

func processHourly(raw RawHourly, zone *time.Location) ([]types.AgriculturalTiming, error) {
	out := make([]types.AgriculturalTiming, 0, len(raw.Time))
	for i, label := range raw.Time {
		at, err := parseHourly(label, zone)
		if err != nil {
			return nil, err
		}
		out = append(out, NewTiming(at,
			valueAt(raw.VaporPressureDeficit, i),
			valueAt(raw.RelativeHumidity, i),
			valueAt(raw.DewPoint, i),
		))
	}
	return out, nil
}

// NewTiming builds one hourly entry with its derived scores.
func NewTiming(at time.Time, vpd, humidity, dewPoint float64) types.AgriculturalTiming {
	return types.AgriculturalTiming{
		Time:                 at,
		VaporPressureDeficit: vpd,
		RelativeHumidity:     humidity,
		DewPoint:             dewPoint,
		PlantStressLevel:     scoring.StressLevel(vpd),
		WateringEfficiency:   scoring.WateringEfficiency(vpd, humidity),
		OutdoorComfortIndex:  scoring.ComfortIndex(vpd, dewPoint),
	}
}

func processDaily(raw RawDaily, zone *time.Location) ([]types.DailyAgriculturalData, error) {
	out := make([]types.DailyAgriculturalData, 0, len(raw.Time))
	for i, label := range raw.Time {
		if _, err := parseDaily(label, zone); err != nil {
			return nil, err
		}
		out = append(out, NewDaily(label, valueAt(raw.ET0, i), valueAt(raw.PrecipitationHours, i)))
	}
	return out, nil
}

// NewDaily builds one daily entry with its derived classifications.
func NewDaily(date string, et0, precipitationHours float64) types.DailyAgriculturalData {
	return types.DailyAgriculturalData{
		Date:                     date,
		ET0:                      et0,
		PrecipitationHours:       precipitationHours,
		WaterDemandLevel:         scoring.WaterDemand(et0),
		IrrigationRecommendation: scoring.IrrigationRecommendation(et0, precipitationHours),
	}
}

// currentHour returns the entry for now's local date and hour. Failing that,
// the first entry with the same hour of day is used; nil when neither exists.
func currentHour(hourly []types.AgriculturalTiming, now time.Time, zone *time.Location) *types.AgriculturalTiming {
	local := now.In(zone)
	var sameHour *types.AgriculturalTiming
	for i := range hourly {
		h := hourly[i].Time.In(zone)
		if h.Hour() != local.Hour() {
			continue
		}
		if h.Year() == local.Year() && h.YearDay() == local.YearDay() {
			c := hourly[i]
			return &c
		}
		if sameHour == nil {
			c := hourly[i]
			sameHour = &c
		}
	}
	return sameHour
}

package agri

import (
	"fmt"
	"time"

	"activitycast/internal/types"
)

// Interval thresholds: a run opens at the first value and stays open while
// values stay at or above the second.
const (
	wateringOpen = 75.0
	wateringKeep = 70.0
	comfortOpen  = 70.0
	comfortKeep  = 65.0

	moderateStressWarnVPD = 1.4
)

// interval is a closed run of indices [first, last] with the sum of its
// scores.
type interval struct {
	first, last int
	sum         float64
}

func (iv interval) hours() int { return iv.last - iv.first + 1 }

func (iv interval) avg() float64 { return iv.sum / float64(iv.hours()) }

// scanIntervals reduces scores to runs that open at a value >= open and
// extend while values stay >= keep. The value that breaks a run is not a
// candidate to open the next one unless it also reaches open. At most limit
// runs are returned, in scan order.
func scanIntervals(scores []float64, open, keep float64, limit int) []interval {
	var (
		out []interval
		acc *interval
	)
	for i, s := range scores {
		if len(out) == limit {
			break
		}
		if acc != nil {
			if s >= keep {
				acc.last = i
				acc.sum += s
				continue
			}
			out = append(out, *acc)
			acc = nil
		}
		if s >= open {
			acc = &interval{first: i, last: i, sum: s}
		}
	}
	if acc != nil && len(out) < limit {
		out = append(out, *acc)
	}
	return out
}

func scores(hourly []types.AgriculturalTiming, pick func(types.AgriculturalTiming) float64) []float64 {
	out := make([]float64, len(hourly))
	for i, h := range hourly {
		out[i] = pick(h)
	}
	return out
}

// WateringWindows finds up to five runs of good watering efficiency.
func WateringWindows(hourly []types.AgriculturalTiming) []types.WateringWindow {
	runs := scanIntervals(
		scores(hourly, func(h types.AgriculturalTiming) float64 { return h.WateringEfficiency }),
		wateringOpen, wateringKeep, maxWateringWindows,
	)

	windows := make([]types.WateringWindow, 0, len(runs))
	for _, r := range runs {
		avg := r.avg()
		windows = append(windows, types.WateringWindow{
			Start:         hourly[r.first].Time,
			End:           hourly[r.last].Time,
			Hours:         r.hours(),
			AvgEfficiency: avg,
			Reason:        wateringReason(avg),
		})
	}
	return windows
}

func wateringReason(avg float64) string {
	switch {
	case avg >= 90:
		return "Excellent watering conditions - minimal evaporation loss"
	case avg >= 80:
		return "Good watering conditions - efficient water uptake"
	default:
		return "Fair watering conditions - some evaporation expected"
	}
}

// ComfortPeriods finds up to five runs of comfortable outdoor hours.
func ComfortPeriods(hourly []types.AgriculturalTiming) []types.ComfortPeriod {
	runs := scanIntervals(
		scores(hourly, func(h types.AgriculturalTiming) float64 { return h.OutdoorComfortIndex }),
		comfortOpen, comfortKeep, maxComfortPeriods,
	)

	periods := make([]types.ComfortPeriod, 0, len(runs))
	for _, r := range runs {
		avg := r.avg()
		periods = append(periods, types.ComfortPeriod{
			Start:       hourly[r.first].Time,
			End:         hourly[r.last].Time,
			Hours:       r.hours(),
			AvgComfort:  avg,
			Description: comfortDescription(avg, r.hours()),
		})
	}
	return periods
}

func comfortDescription(avg float64, hours int) string {
	quality := "Comfortable"
	if avg >= 85 {
		quality = "Very comfortable"
	}
	return fmt.Sprintf("%s outdoor conditions for %d hour(s)", quality, hours)
}

// StressWarnings flags hours of high stress, and of moderate stress with VPD
// above 1.4, up to ten in chronological order.
func StressWarnings(hourly []types.AgriculturalTiming) []types.StressWarning {
	warnings := make([]types.StressWarning, 0)
	for _, h := range hourly {
		if len(warnings) == maxStressWarnings {
			break
		}
		switch {
		case h.PlantStressLevel == types.StressHigh:
			warnings = append(warnings, types.StressWarning{
				Time:     h.Time,
				VPD:      h.VaporPressureDeficit,
				Severity: types.SeverityHigh,
				Message:  fmt.Sprintf("High plant stress expected (VPD %.2f kPa). Provide shade and water early.", h.VaporPressureDeficit),
			})
		case h.PlantStressLevel == types.StressModerate && h.VaporPressureDeficit > moderateStressWarnVPD:
			warnings = append(warnings, types.StressWarning{
				Time:     h.Time,
				VPD:      h.VaporPressureDeficit,
				Severity: types.SeverityModerate,
				Message:  fmt.Sprintf("Rising plant stress (VPD %.2f kPa). Monitor sensitive plants.", h.VaporPressureDeficit),
			})
		}
	}
	return warnings
}

// WeeklySummary aggregates the whole forecast. It is a pure function of its
// inputs.
func WeeklySummary(hourly []types.AgriculturalTiming, daily []types.DailyAgriculturalData) types.WeeklySummary {
	var vpdSum float64
	for _, h := range hourly {
		vpdSum += h.VaporPressureDeficit
	}
	var avgVPD float64
	if len(hourly) > 0 {
		avgVPD = vpdSum / float64(len(hourly))
	}

	var totalET0, rainHours float64
	best := make([]string, 0, maxBestDays)
	for _, d := range daily {
		totalET0 += d.ET0
		rainHours += d.PrecipitationHours
		if d.WaterDemandLevel != types.DemandHigh && len(best) < maxBestDays {
			best = append(best, d.Date)
		}
	}

	return types.WeeklySummary{
		AvgVPD:            avgVPD,
		TotalET0:          totalET0,
		RainHours:         rainHours,
		IrrigationNeeded:  totalET0 > rainHours*2,
		BestGardeningDays: best,
	}
}

// windowEnd is the instant a window of hourly entries closes.
func windowEnd(last time.Time) time.Time {
	return last.Add(time.Hour)
}

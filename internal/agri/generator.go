package agri

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"activitycast/internal/scoring"
	"activitycast/internal/types"
)

// ErrNoAgriculturalData is returned when a forecast has neither a current
// snapshot nor any hourly entry to derive suggestions from.
var ErrNoAgriculturalData = errors.New("no agricultural data available")

// WindowTiming selects how timing-based watering suggestions are placed.
type WindowTiming string

const (
	// TimingRelative places window N at now + N*3h for two hours, whatever
	// hours the window was computed from.
	TimingRelative WindowTiming = "relative"
	// TimingForecast uses the window's own forecast hours.
	TimingForecast WindowTiming = "forecast"
)

// ParseWindowTiming parses a WindowTiming. Empty selects TimingRelative.
func ParseWindowTiming(s string) (WindowTiming, error) {
	switch WindowTiming(strings.ToLower(strings.TrimSpace(s))) {
	case "", TimingRelative:
		return TimingRelative, nil
	case TimingForecast:
		return TimingForecast, nil
	}
	return "", fmt.Errorf("unknown window timing %q", s)
}

// Suggestion thresholds and windows.
const (
	optimalWateringEfficiency = 75.0
	highDemandET0             = 5.0
	lowDemandET0              = 2.0
	perfectComfortIndex       = 80.0
	dehydrationVPD            = 1.8

	timingWindows      = 3
	timingWindowStride = 3 * time.Hour
	timingWindowLength = 2 * time.Hour
	comfortLookahead   = 3
)

// Activity labels.
const (
	ActivityOptimalWatering = "Optimal Plant Watering"
	ActivityAvoidWatering   = "Avoid Watering"
	ActivityLightWatering   = "Light Watering Only"
	ActivityHighDemandDay   = "High Water Demand Day"
	ActivityLowMaintenance  = "Low Maintenance Day"
	ActivityPerfectOutdoors = "Perfect Outdoor Conditions"
	ActivityDehydration     = "High Dehydration Risk"
	ActivityIdealFeel       = "Ideal Outdoor Temperature Feel"
	activityTimingWindowFmt = "Optimal Watering Window %d"
)

// Generator turns a processed agricultural forecast into smart suggestions.
// It is stateless and safe for concurrent use.
type Generator struct {
	timing WindowTiming
}

// NewGenerator returns a Generator placing timing windows per timing.
func NewGenerator(timing WindowTiming) *Generator {
	if timing == "" {
		timing = TimingRelative
	}
	return &Generator{timing: timing}
}

// genContext is the per-call input shared by the individual generators.
type genContext struct {
	forecast *types.AgriculturalForecast
	current  types.AgriculturalTiming
	today    *types.DailyAgriculturalData
	now      time.Time
	zone     *time.Location
	location string
}

func (c genContext) stamp(t time.Time) string {
	return t.In(c.zone).Format(time.RFC3339)
}

// window returns RFC3339 bounds [start, start+d].
func (c genContext) window(start time.Time, d time.Duration) (string, string) {
	return c.stamp(start), c.stamp(start.Add(d))
}

func (c genContext) snapshot() types.AgriculturalSnapshot {
	snap := types.AgriculturalSnapshot{
		VPD:      c.current.VaporPressureDeficit,
		Humidity: c.current.RelativeHumidity,
		DewPoint: c.current.DewPoint,
	}
	if c.today != nil {
		et0 := c.today.ET0
		snap.ET0 = &et0
	}
	return snap
}

// Generate runs the watering, plant-care, outdoor-comfort and timing
// generators, in that order, and assigns IDs.
func (g *Generator) Generate(forecast *types.AgriculturalForecast, now time.Time, locationName string) ([]types.SmartActivitySuggestion, error) {
	if forecast == nil {
		return nil, ErrNoAgriculturalData
	}

	var current types.AgriculturalTiming
	switch {
	case forecast.Current != nil:
		current = *forecast.Current
	case len(forecast.Hourly) > 0:
		current = forecast.Hourly[0]
	default:
		return nil, ErrNoAgriculturalData
	}

	zone := types.FixedZone(forecast.TimezoneOffset)
	c := genContext{
		forecast: forecast,
		current:  current,
		today:    dailyFor(forecast.Daily, now.In(zone)),
		now:      now,
		zone:     zone,
		location: locationName,
	}

	out := make([]types.SmartActivitySuggestion, 0)
	out = append(out, wateringSuggestions(c)...)
	out = append(out, plantCareSuggestions(c)...)
	out = append(out, comfortSuggestions(c)...)
	out = append(out, g.timingSuggestions(c)...)

	millis := now.UnixMilli()
	for i := range out {
		out[i].ID = fmt.Sprintf("agri_%s_%d", slug(out[i].Activity), millis)
	}
	return out, nil
}

// dailyFor returns the entry for the local date, else the first entry.
func dailyFor(daily []types.DailyAgriculturalData, local time.Time) *types.DailyAgriculturalData {
	if len(daily) == 0 {
		return nil
	}
	date := local.Format(dailyLayout)
	for i := range daily {
		if strings.HasPrefix(daily[i].Date, date) {
			d := daily[i]
			return &d
		}
	}
	d := daily[0]
	return &d
}

func slug(s string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func newSmart(c genContext, category types.SuggestionCategory, s types.ActivitySuggestion, insight string) types.SmartActivitySuggestion {
	return types.SmartActivitySuggestion{
		ActivitySuggestion:  s,
		Category:            category,
		ProfessionalInsight: insight,
		AgriculturalData:    c.snapshot(),
	}
}

func wateringSuggestions(c genContext) []types.SmartActivitySuggestion {
	vpd := c.current.VaporPressureDeficit
	eff := c.current.WateringEfficiency
	var out []types.SmartActivitySuggestion

	if vpd >= scoring.StressModerateVPD && vpd <= scoring.StressHighVPD && eff >= optimalWateringEfficiency {
		start, end := c.window(c.now, 2*time.Hour)
		out = append(out, newSmart(c, types.CategoryGardening, types.ActivitySuggestion{
			Activity:    ActivityOptimalWatering,
			Description: fmt.Sprintf("Ideal time to water your garden in %s. Plants will take up water efficiently.", c.location),
			Confidence:  math.Min(0.95, eff/100),
			Reasons: []string{
				fmt.Sprintf("VPD of %.2f kPa is in the optimal range", vpd),
				fmt.Sprintf("Watering efficiency is %.0f%%", eff),
				fmt.Sprintf("Relative humidity at %.0f%%", c.current.RelativeHumidity),
			},
			StartTime: start,
			EndTime:   end,
		}, "With VPD between 0.4 and 1.6 kPa, stomata stay open and transpiration is steady, so irrigation water is drawn into the root zone rather than lost to surface evaporation. Water at the base of plants to keep foliage dry."))
	}

	if vpd > scoring.StressHighVPD {
		start, end := c.window(c.now, time.Hour)
		out = append(out, newSmart(c, types.CategoryGardening, types.ActivitySuggestion{
			Activity:    ActivityAvoidWatering,
			Description: "The air is very dry. Watering now would mostly evaporate before plants can use it.",
			Confidence:  0.9,
			Reasons: []string{
				fmt.Sprintf("High VPD of %.2f kPa", vpd),
				"Rapid evaporation from soil and leaves",
			},
			StartTime: start,
			EndTime:   end,
		}, "Above 1.6 kPa, plants close their stomata to limit water loss and evaporative demand peaks. Irrigate in the early morning or evening when VPD drops, and mulch to protect soil moisture."))
	}

	if vpd < scoring.StressModerateVPD {
		start, end := c.window(c.now, time.Hour)
		out = append(out, newSmart(c, types.CategoryGardening, types.ActivitySuggestion{
			Activity:    ActivityLightWatering,
			Description: "The air is humid and plants are transpiring slowly. Water lightly, only where soil is dry.",
			Confidence:  0.7,
			Reasons: []string{
				fmt.Sprintf("Low VPD of %.2f kPa", vpd),
				"Reduced plant water uptake",
			},
			StartTime: start,
			EndTime:   end,
		}, "Below 0.4 kPa, transpiration slows and wet foliage dries poorly, which favours fungal disease. Keep watering light and targeted at the soil, and check moisture a few centimetres down before adding more."))
	}

	return out
}

func plantCareSuggestions(c genContext) []types.SmartActivitySuggestion {
	if c.today == nil {
		return nil
	}
	et0 := c.today.ET0
	start, end := c.window(c.now, 24*time.Hour)
	var out []types.SmartActivitySuggestion

	if et0 > highDemandET0 {
		out = append(out, newSmart(c, types.CategoryPlantCare, types.ActivitySuggestion{
			Activity:    ActivityHighDemandDay,
			Description: "Plants will lose a lot of water today. Check containers and new plantings twice.",
			Confidence:  0.85,
			Reasons: []string{
				fmt.Sprintf("Reference evapotranspiration of %.1f mm", et0),
				c.today.IrrigationRecommendation,
			},
			StartTime: start,
			EndTime:   end,
		}, "Reference evapotranspiration above 5 mm/day means a well-watered grass surface would lose more than 5 litres per square metre today. Shallow-rooted and potted plants deplete their reserve first, so deep watering early in the day is most effective."))
	}

	if et0 < lowDemandET0 {
		out = append(out, newSmart(c, types.CategoryPlantCare, types.ActivitySuggestion{
			Activity:    ActivityLowMaintenance,
			Description: "Low water demand today. A good day for pruning, planting or weeding instead of watering.",
			Confidence:  0.8,
			Reasons: []string{
				fmt.Sprintf("Reference evapotranspiration of only %.1f mm", et0),
				c.today.IrrigationRecommendation,
			},
			StartTime: start,
			EndTime:   end,
		}, "With evapotranspiration below 2 mm/day, soil moisture lasts and transplant shock is reduced. This is a good window for planting out seedlings and dividing perennials."))
	}

	return out
}

func comfortSuggestions(c genContext) []types.SmartActivitySuggestion {
	var out []types.SmartActivitySuggestion

	if c.current.OutdoorComfortIndex >= perfectComfortIndex {
		end := c.current.Time
		if hourly := c.forecast.Hourly; len(hourly) > comfortLookahead {
			end = hourly[comfortLookahead].Time
		}
		if end.Before(c.now) {
			end = c.now
		}
		out = append(out, newSmart(c, types.CategoryOutdoorComfort, types.ActivitySuggestion{
			Activity:    ActivityPerfectOutdoors,
			Description: fmt.Sprintf("Conditions in %s are ideal for any outdoor activity.", c.location),
			Confidence:  0.9,
			Reasons: []string{
				fmt.Sprintf("Outdoor comfort index of %.0f", c.current.OutdoorComfortIndex),
				fmt.Sprintf("Dew point at %.1f°C", c.current.DewPoint),
			},
			StartTime: c.stamp(c.now),
			EndTime:   c.stamp(end),
		}, "Comfort combines air dryness with dew point. Moderate VPD lets sweat evaporate efficiently, and a dew point in the mid-teens avoids both the clammy feel of humid air and the dryness of arid air."))
	}

	if c.current.VaporPressureDeficit > dehydrationVPD {
		start, end := c.window(c.now, 2*time.Hour)
		out = append(out, newSmart(c, types.CategoryOutdoorComfort, types.ActivitySuggestion{
			Activity:    ActivityDehydration,
			Description: "Very dry air. Drink water regularly and limit strenuous activity in direct sun.",
			Confidence:  0.85,
			Reasons: []string{
				fmt.Sprintf("VPD of %.2f kPa draws moisture from skin and airways", c.current.VaporPressureDeficit),
			},
			StartTime: start,
			EndTime:   end,
		}, "At high VPD the body loses water through respiration and sweat faster than thirst signals suggest. Outdoor workers and athletes should plan for roughly half a litre of fluid per hour of exertion."))
	}

	if scoring.InIdealDewPointBand(c.current.DewPoint) {
		start, end := c.window(c.now, 2*time.Hour)
		out = append(out, newSmart(c, types.CategoryOutdoorComfort, types.ActivitySuggestion{
			Activity:    ActivityIdealFeel,
			Description: "The air feels pleasant, neither sticky nor dry.",
			Confidence:  0.8,
			Reasons: []string{
				fmt.Sprintf("Dew point of %.1f°C is in the ideal 15-18°C range", c.current.DewPoint),
			},
			StartTime: start,
			EndTime:   end,
		}, "Perceived comfort tracks dew point more closely than relative humidity. Between 15 and 18°C most people find the air comfortable for both rest and exercise."))
	}

	return out
}

func (g *Generator) timingSuggestions(c genContext) []types.SmartActivitySuggestion {
	windows := c.forecast.GardeningInsights.OptimalWateringWindows
	if len(windows) > timingWindows {
		windows = windows[:timingWindows]
	}

	out := make([]types.SmartActivitySuggestion, 0, len(windows))
	for i, w := range windows {
		var start, end string
		switch g.timing {
		case TimingForecast:
			start, end = c.stamp(w.Start), c.stamp(windowEnd(w.End))
		default:
			start, end = c.window(c.now.Add(time.Duration(i)*timingWindowStride), timingWindowLength)
		}

		out = append(out, newSmart(c, types.CategoryGardening, types.ActivitySuggestion{
			Activity:    fmt.Sprintf(activityTimingWindowFmt, i+1),
			Description: w.Reason,
			Confidence:  math.Min(1, w.AvgEfficiency/100),
			Reasons: []string{
				fmt.Sprintf("Average watering efficiency of %.0f%%", w.AvgEfficiency),
				fmt.Sprintf("Lasts %d hour(s)", w.Hours),
			},
			StartTime: start,
			EndTime:   end,
		}, "Watering windows are runs of consecutive hours where VPD and humidity keep evaporation low. Scheduling irrigation inside them delivers more water to the roots for the same volume."))
	}
	return out
}

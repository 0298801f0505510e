// Package scoring holds the threshold-band classifiers and 0-100 scores used
// by the suggestion engine and the agricultural processor. Every function is
// pure and total over its float64 inputs.
package scoring

import (
	"math"

	"activitycast/internal/types"
)

// VPD bands in kPa.
const (
	StressModerateVPD = 0.4
	StressHighVPD     = 1.6

	wateringBandLow  = 0.4
	wateringBandHigh = 1.2
	wateringPeakVPD  = 0.8

	comfortBandLow  = 0.6
	comfortBandHigh = 1.4
	comfortPeakVPD  = 1.0
)

// Dew point bands in degrees Celsius.
const (
	DewPointIdealLow  = 15.0
	DewPointIdealHigh = 18.0

	dewPointFairLow  = 10.0
	dewPointFairHigh = 22.0
	dewPointCenter   = 16.5
)

// ET0 bands in mm/day.
const (
	DemandModerateET0 = 3.0
	DemandHighET0     = 6.0
)

// Irrigation recommendation texts, in rule priority order.
const (
	IrrigationNatural  = "Natural irrigation sufficient - rain expected to cover plant water needs"
	IrrigationLight    = "Light watering recommended - low evaporation expected"
	IrrigationModerate = "Moderate watering needed - check soil moisture before watering"
	IrrigationHigh     = "High water demand - ensure adequate irrigation today"
)

// StressLevel classifies plant stress from VPD: below 0.4 is low, 0.4 to 1.6
// inclusive is moderate, above 1.6 is high.
func StressLevel(vpd float64) types.StressLevel {
	switch {
	case vpd < StressModerateVPD:
		return types.StressLow
	case vpd <= StressHighVPD:
		return types.StressModerate
	default:
		return types.StressHigh
	}
}

// WateringEfficiency scores how well water applied now is used by plants.
// The VPD component peaks at 0.8 kPa; it is blended 70/30 with a humidity
// component.
func WateringEfficiency(vpd, humidity float64) float64 {
	var vpdScore float64
	switch {
	case vpd >= wateringBandLow && vpd <= wateringBandHigh:
		vpdScore = 100 - math.Abs(vpd-wateringPeakVPD)*50
	case vpd < wateringBandLow:
		vpdScore = 60 + vpd*100
	default:
		vpdScore = math.Max(0, 100-(vpd-wateringBandHigh)*30)
	}

	humidityScore := math.Min(100, humidity*1.2)

	return clampScore(vpdScore*0.7 + humidityScore*0.3)
}

// ComfortIndex scores human outdoor comfort from VPD and dew point, 60% VPD
// comfort and 40% dew point comfort.
func ComfortIndex(vpd, dewPoint float64) float64 {
	var vpdComfort float64
	if vpd >= comfortBandLow && vpd <= comfortBandHigh {
		vpdComfort = 100 - math.Abs(vpd-comfortPeakVPD)*25
	} else {
		vpdComfort = math.Max(0, 100-math.Abs(vpd-comfortPeakVPD)*40)
	}

	return clampScore(vpdComfort*0.6 + DewPointComfort(dewPoint)*0.4)
}

// DewPointComfort is 100 inside the ideal band, decays linearly out to the
// fair band and twice as fast beyond it.
func DewPointComfort(dewPoint float64) float64 {
	dist := math.Abs(dewPoint - dewPointCenter)
	switch {
	case dewPoint >= DewPointIdealLow && dewPoint <= DewPointIdealHigh:
		return 100
	case dewPoint >= dewPointFairLow && dewPoint <= dewPointFairHigh:
		return 80 - dist*3
	default:
		return math.Max(0, 80-dist*3*2)
	}
}

// WaterDemand classifies daily ET0: below 3 is low, 3 to 6 inclusive is
// moderate, above 6 is high.
func WaterDemand(et0 float64) types.WaterDemandLevel {
	switch {
	case et0 < DemandModerateET0:
		return types.DemandLow
	case et0 <= DemandHighET0:
		return types.DemandModerate
	default:
		return types.DemandHigh
	}
}

// IrrigationRecommendation picks the first matching rule: more than 4 hours
// of rain, then ET0 below 2, then ET0 below 5, else high demand.
func IrrigationRecommendation(et0, precipitationHours float64) string {
	switch {
	case precipitationHours > 4:
		return IrrigationNatural
	case et0 < 2:
		return IrrigationLight
	case et0 < 5:
		return IrrigationModerate
	default:
		return IrrigationHigh
	}
}

// InIdealDewPointBand reports whether dewPoint feels ideal to most people.
func InIdealDewPointBand(dewPoint float64) bool {
	return dewPoint >= DewPointIdealLow && dewPoint <= DewPointIdealHigh
}

func clampScore(v float64) float64 {
	return math.Round(math.Max(0, math.Min(100, v)))
}

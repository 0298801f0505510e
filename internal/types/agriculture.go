package types

import "time"

// StressLevel is the plant stress class derived from VPD.
type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
)

// WaterDemandLevel is the daily water demand class derived from ET0.
type WaterDemandLevel string

const (
	DemandLow      WaterDemandLevel = "low"
	DemandModerate WaterDemandLevel = "moderate"
	DemandHigh     WaterDemandLevel = "high"
)

// AgriculturalTiming is one hourly agricultural reading with derived scores.
type AgriculturalTiming struct {
	Time                 time.Time   `json:"time"`
	VaporPressureDeficit float64     `json:"vapour_pressure_deficit"`
	RelativeHumidity     float64     `json:"relative_humidity"`
	DewPoint             float64     `json:"dew_point"`
	PlantStressLevel     StressLevel `json:"plant_stress_level"`
	WateringEfficiency   float64     `json:"watering_efficiency"`
	OutdoorComfortIndex  float64     `json:"outdoor_comfort_index"`
}

// DailyAgriculturalData is one day of water-balance data.
type DailyAgriculturalData struct {
	Date                     string           `json:"date"`
	ET0                      float64          `json:"et0_evapotranspiration"`
	PrecipitationHours       float64          `json:"precipitation_hours"`
	WaterDemandLevel         WaterDemandLevel `json:"water_demand_level"`
	IrrigationRecommendation string           `json:"irrigation_recommendation"`
}

// WateringWindow is a contiguous run of hours with good watering efficiency.
type WateringWindow struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Hours         int       `json:"hours"`
	AvgEfficiency float64   `json:"avg_efficiency"`
	Reason        string    `json:"reason"`
}

// StressWarning flags one hour of elevated plant stress.
type StressWarning struct {
	Time     time.Time `json:"time"`
	VPD      float64   `json:"vpd"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// ComfortPeriod is a contiguous run of comfortable outdoor hours.
type ComfortPeriod struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Hours       int       `json:"hours"`
	AvgComfort  float64   `json:"avg_comfort"`
	Description string    `json:"description"`
}

// GardeningInsights are the interval-merge derived insights.
type GardeningInsights struct {
	OptimalWateringWindows []WateringWindow `json:"optimal_watering_windows"`
	StressWarnings         []StressWarning  `json:"stress_warnings"`
	ComfortPeriods         []ComfortPeriod  `json:"comfort_periods"`
}

// WeeklySummary aggregates the whole agricultural forecast.
type WeeklySummary struct {
	AvgVPD            float64  `json:"avg_vpd"`
	TotalET0          float64  `json:"total_et0"`
	RainHours         float64  `json:"rain_hours"`
	IrrigationNeeded  bool     `json:"irrigation_needed"`
	BestGardeningDays []string `json:"best_gardening_days"`
}

// AgriculturalForecast is the processed agricultural view of a location.
type AgriculturalForecast struct {
	Current           *AgriculturalTiming     `json:"current,omitempty"`
	Hourly            []AgriculturalTiming    `json:"hourly"`
	Daily             []DailyAgriculturalData `json:"daily"`
	GardeningInsights GardeningInsights       `json:"gardening_insights"`
	WeeklySummary     WeeklySummary           `json:"weekly_summary"`
	TimezoneOffset    int                     `json:"utc_offset_seconds"`
}

// SuggestionCategory groups smart suggestions for display.
type SuggestionCategory string

const (
	CategoryGardening      SuggestionCategory = "gardening"
	CategoryPlantCare      SuggestionCategory = "plant_care"
	CategoryOutdoorComfort SuggestionCategory = "outdoor_comfort"
	CategoryGeneral        SuggestionCategory = "general"
)

// AgriculturalSnapshot is the data that justified a smart suggestion.
type AgriculturalSnapshot struct {
	VPD      float64  `json:"vpd"`
	Humidity float64  `json:"humidity"`
	DewPoint float64  `json:"dew_point"`
	ET0      *float64 `json:"et0,omitempty"`
}

// SmartActivitySuggestion is an ActivitySuggestion backed by agricultural data.
type SmartActivitySuggestion struct {
	ActivitySuggestion
	ID                  string               `json:"id"`
	Category            SuggestionCategory   `json:"category"`
	ProfessionalInsight string               `json:"professional_insight"`
	AgriculturalData    AgriculturalSnapshot `json:"agricultural_data"`
}

package types

import "time"

// ActivitySuggestion is a recommended activity with its validity window.
// EndTime is never before StartTime.
type ActivitySuggestion struct {
	Activity    string   `json:"activity"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
	Reasons     []string `json:"reasons"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
}

// AlertType tags the alert variants.
type AlertType string

const (
	AlertTypeWeather AlertType = "weather"
	AlertTypeAir     AlertType = "air"
)

// Severity grades a weather alert.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// Trend is the direction of AQI movement versus history.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendWorsening Trend = "worsening"
	TrendStable    Trend = "stable"
)

// Alert is implemented by WeatherAlert and AirQualityAlert.
type Alert interface {
	AlertType() AlertType
}

// WeatherAlert flags a sharp weather transition that disrupts plans.
type WeatherAlert struct {
	Type               AlertType `json:"type"`
	Message            string    `json:"message"`
	Severity           Severity  `json:"severity"`
	AffectedActivities []string  `json:"affected_activities"`
	StartTime          string    `json:"start_time"`
}

// AlertType implements Alert.
func (WeatherAlert) AlertType() AlertType { return AlertTypeWeather }

// AirQualityAlert reports a poor AQI or an AQI trend.
type AirQualityAlert struct {
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	AQI       int       `json:"aqi"`
	Trend     Trend     `json:"trend"`
	StartTime string    `json:"start_time"`
}

// AlertType implements Alert.
func (AirQualityAlert) AlertType() AlertType { return AlertTypeAir }

// SuggestionRequest is everything the engine needs for one location.
type SuggestionRequest struct {
	Forecast ForecastSeries
	// CurrentAQI applies to every slice not covered by AQISeries.
	CurrentAQI   int
	AQIHistory   []int
	AQISeries    []AQISample
	CurrentTime  time.Time
	Agricultural *AgriculturalForecast
	// AgriculturalErr is set when agricultural data was supplied but could
	// not be processed. It degrades like a generator failure.
	AgriculturalErr error
	LocationName    string
}

// EnhancedSuggestionResult is the engine output for one location.
type EnhancedSuggestionResult struct {
	Suggestions      []ActivitySuggestion      `json:"suggestions"`
	Alerts           []Alert                   `json:"alerts"`
	Forecast         []ForecastSlice           `json:"forecast"`
	SmartSuggestions []SmartActivitySuggestion `json:"smart_suggestions,omitempty"`
}

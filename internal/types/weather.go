package types

import "time"

// ForecastTimeLayout is the layout of the dt_txt field on forecast slices.
// Slice text timestamps are UTC.
const ForecastTimeLayout = "2006-01-02 15:04:05"

// DefaultVisibility is reported for every slice because the forecast source
// carries no visibility field.
const DefaultVisibility = 10000

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Location is the metadata attached to a forecast series. TimezoneOffset is
// the UTC offset in seconds and drives every local-time computation.
type Location struct {
	Name           string      `json:"name"`
	Coord          Coordinates `json:"coord"`
	Country        string      `json:"country,omitempty"`
	TimezoneOffset int         `json:"timezone"`
}

// Zone returns a fixed time zone for the location's UTC offset.
func (l Location) Zone() *time.Location {
	return FixedZone(l.TimezoneOffset)
}

// FixedZone returns a *time.Location for a UTC offset in seconds.
func FixedZone(offsetSeconds int) *time.Location {
	if offsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone("", offsetSeconds)
}

// MainReadings holds the thermodynamic fields of a forecast slice. Pointer
// fields are nil when the provider omitted them.
type MainReadings struct {
	Temp      *float64 `json:"temp,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty"`
	Pressure  *float64 `json:"pressure,omitempty"`
}

// WindReadings holds wind speed and direction.
type WindReadings struct {
	Speed *float64 `json:"speed,omitempty"`
	Deg   *float64 `json:"deg,omitempty"`
}

// CloudCover is the total cloud cover in percent.
type CloudCover struct {
	All float64 `json:"all"`
}

// Precipitation is the volume accumulated over the trailing three hours.
type Precipitation struct {
	ThreeHour *float64 `json:"3h,omitempty"`
}

// WeatherCode is the provider's condition classification for a slice.
type WeatherCode struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// ForecastSlice is one 3-hour interval of a forecast series.
type ForecastSlice struct {
	Dt      int64          `json:"dt"`
	DtTxt   string         `json:"dt_txt"`
	Main    MainReadings   `json:"main"`
	Wind    WindReadings   `json:"wind"`
	Clouds  CloudCover     `json:"clouds"`
	Rain    *Precipitation `json:"rain,omitempty"`
	Snow    *Precipitation `json:"snow,omitempty"`
	Weather []WeatherCode  `json:"weather,omitempty"`
}

// Time returns the slice instant in UTC. The epoch field wins; dt_txt is the
// fallback. The zero time is returned when neither can be read.
func (s ForecastSlice) Time() time.Time {
	if s.Dt != 0 {
		return time.Unix(s.Dt, 0).UTC()
	}
	t, err := time.ParseInLocation(ForecastTimeLayout, s.DtTxt, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Label returns the slice's text timestamp, deriving it from dt when absent.
func (s ForecastSlice) Label() string {
	if s.DtTxt != "" {
		return s.DtTxt
	}
	if s.Dt == 0 {
		return ""
	}
	return time.Unix(s.Dt, 0).UTC().Format(ForecastTimeLayout)
}

// PrecipitationVolume returns the trailing 3h volume (rain first, then snow)
// and the precipitation type. ok is false when the slice has no precipitation
// object at all.
func (s ForecastSlice) PrecipitationVolume() (volume float64, kind string, ok bool) {
	switch {
	case s.Rain != nil:
		if s.Rain.ThreeHour != nil {
			volume = *s.Rain.ThreeHour
		}
		return volume, PrecipitationRain, true
	case s.Snow != nil:
		if s.Snow.ThreeHour != nil {
			volume = *s.Snow.ThreeHour
		}
		return volume, PrecipitationSnow, true
	}
	return 0, "", false
}

// Precipitation types reported on Conditions.
const (
	PrecipitationRain = "rain"
	PrecipitationSnow = "snow"
)

// ForecastSeries is a chronologically ordered list of slices for one location.
type ForecastSeries struct {
	List []ForecastSlice `json:"list"`
	City Location        `json:"city"`
}

// AirQualityReading is a scalar AQI class (1 best, 5 worst) with optional raw
// pollutant concentrations keyed by pollutant name.
type AirQualityReading struct {
	AQI        int                `json:"aqi" validate:"min=1,max=5"`
	Components map[string]float64 `json:"components,omitempty"`
}

// AQISample is a timestamped AQI value used to give each slice its own AQI.
type AQISample struct {
	Time time.Time `json:"time"`
	AQI  int       `json:"aqi" validate:"min=1,max=5"`
}

// TimeOfDay classifies a local hour.
type TimeOfDay string

const (
	TimeOfDayDay   TimeOfDay = "day"
	TimeOfDayNight TimeOfDay = "night"
)

// Conditions is the flat, decision-relevant view of a single slice.
type Conditions struct {
	Temp              *float64  `json:"temp"`
	FeelsLike         *float64  `json:"feels_like"`
	WindSpeed         *float64  `json:"wind_speed"`
	CloudCover        float64   `json:"cloud_cover"`
	Precipitation     float64   `json:"precipitation"`
	PrecipitationType string    `json:"precipitation_type,omitempty"`
	AQI               *int      `json:"aqi"`
	Visibility        int       `json:"visibility"`
	TimeOfDay         TimeOfDay `json:"time_of_day"`
}

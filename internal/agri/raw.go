// Package agri derives plant and comfort metrics from hourly and daily
// agricultural series and turns them into smart gardening suggestions.
package agri

import (
	"errors"
	"fmt"
	"time"
)

// Time layouts accepted on raw series labels, tried in order. Labels without
// an offset are local to the series' UTC offset.
var (
	hourlyLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}
	dailyLayout   = "2006-01-02"
)

// ErrMalformedForecast is returned when a raw series label cannot be read.
var ErrMalformedForecast = errors.New("malformed agricultural forecast")

// RawForecast is the provider response shape: parallel arrays aligned by
// index to a time label. Null entries decode as nil and count as zero.
type RawForecast struct {
	UTCOffsetSeconds int       `json:"utc_offset_seconds"`
	Timezone         string    `json:"timezone,omitempty"`
	Hourly           RawHourly `json:"hourly"`
	Daily            RawDaily  `json:"daily"`
}

// RawHourly holds the hourly arrays.
type RawHourly struct {
	Time                 []string   `json:"time"`
	VaporPressureDeficit []*float64 `json:"vapour_pressure_deficit"`
	RelativeHumidity     []*float64 `json:"relative_humidity_2m"`
	DewPoint             []*float64 `json:"dew_point_2m"`
}

// RawDaily holds the daily arrays.
type RawDaily struct {
	Time               []string   `json:"time"`
	ET0                []*float64 `json:"et0_fao_evapotranspiration"`
	PrecipitationHours []*float64 `json:"precipitation_hours"`
}

// valueAt returns values[i], or 0 when the entry is null or missing.
func valueAt(values []*float64, i int) float64 {
	if i < 0 || i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}

func parseHourly(label string, loc *time.Location) (time.Time, error) {
	for _, layout := range hourlyLayouts {
		if t, err := time.ParseInLocation(layout, label, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unreadable hourly time %q", ErrMalformedForecast, label)
}

func parseDaily(label string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dailyLayout, label, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unreadable daily date %q", ErrMalformedForecast, label)
	}
	return t, nil
}

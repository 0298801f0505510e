package suggest

import (
	"sort"
	"time"

	"activitycast/internal/scoring"
	"activitycast/internal/types"
)

// aqiResolver picks the AQI in force at a given instant: the latest series
// sample at or before it, else the scalar fallback.
type aqiResolver struct {
	samples  []types.AQISample
	fallback int
}

func newAQIResolver(series []types.AQISample, fallback int) aqiResolver {
	samples := make([]types.AQISample, 0, len(series))
	for _, s := range series {
		if scoring.ValidAQI(s.AQI) && !s.Time.IsZero() {
			samples = append(samples, s)
		}
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	})
	return aqiResolver{samples: samples, fallback: fallback}
}

// at returns nil when neither a sample nor a valid fallback applies.
func (r aqiResolver) at(t time.Time) *int {
	if !t.IsZero() && len(r.samples) > 0 {
		// First sample strictly after t; the one before it is in force.
		idx := sort.Search(len(r.samples), func(i int) bool {
			return r.samples[i].Time.After(t)
		})
		if idx > 0 {
			v := r.samples[idx-1].AQI
			return &v
		}
	}
	if !scoring.ValidAQI(r.fallback) {
		return nil
	}
	v := r.fallback
	return &v
}

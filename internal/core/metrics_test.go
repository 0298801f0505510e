package core

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics("activitycast_test")

	m.RecordRequest("POST", "/v1/suggestions", "200", 25*time.Millisecond)
	m.RecordRequest("POST", "/v1/suggestions", "200", 30*time.Millisecond)
	m.ObserveSuggestions(3, 1, 2)
	m.ObserveSuggestions(1, 0, 0)
	m.ObserveAgriculturalDegradation()

	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/v1/suggestions", "200")); got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.suggestions.WithLabelValues("base")); got != 4 {
		t.Errorf("expected 4 base suggestions, got %v", got)
	}
	if got := testutil.ToFloat64(m.suggestions.WithLabelValues("smart")); got != 2 {
		t.Errorf("expected 2 smart suggestions, got %v", got)
	}
	if got := testutil.ToFloat64(m.degraded); got != 1 {
		t.Errorf("expected 1 degradation, got %v", got)
	}
	if n := testutil.CollectAndCount(m.latency); n != 1 {
		t.Errorf("expected 1 latency series, got %d", n)
	}
}

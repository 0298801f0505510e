package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func runHealth(t *testing.T, probes ...HealthProbe) (int, healthResponse) {
	t.Helper()
	s := newTestServer(t, testConfig())
	s.HealthProbes = probes

	w := httptest.NewRecorder()
	s.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	return w.Code, body
}

func TestHandleHealth_NoProbes(t *testing.T) {
	code, body := runHealth(t)
	if code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
	if body.Status != "healthy" || body.Version != "test" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestHandleHealth_AllHealthy(t *testing.T) {
	code, body := runHealth(t, &MockHealthProbe{ProbeName: "engine"}, &MockHealthProbe{ProbeName: "agri"})
	if code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
	if len(body.Components) != 2 {
		t.Errorf("expected 2 components, got %v", body.Components)
	}
}

func TestHandleHealth_FailingProbe(t *testing.T) {
	code, body := runHealth(t,
		&MockHealthProbe{ProbeName: "engine"},
		&MockHealthProbe{ProbeName: "agri", Err: errors.New("processor unavailable")},
	)
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", code)
	}
	if got := body.Components["agri"]; got.Status != "unhealthy" || got.Message != "processor unavailable" {
		t.Errorf("unexpected agri component %+v", got)
	}
	if got := body.Components["engine"]; got.Status != "healthy" {
		t.Errorf("unexpected engine component %+v", got)
	}
}

type panickingProbe struct{}

func (panickingProbe) Name() string { return "panicky" }

func (panickingProbe) Check(_ context.Context) error { panic("boom") }

func TestHandleHealth_PanickingProbe(t *testing.T) {
	code, body := runHealth(t, panickingProbe{})
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", code)
	}
	if body.Components["panicky"].Status != "unhealthy" {
		t.Errorf("expected panicking probe to be unhealthy, got %+v", body.Components)
	}
}

func TestHandleHealth_Timeout(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the health deadline")
	}
	code, body := runHealth(t, &MockHealthProbe{ProbeName: "slow", Delay: 5 * time.Second})
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", code)
	}
	if body.Components["slow"].Status != "unhealthy" {
		t.Errorf("expected slow probe to be unhealthy, got %+v", body.Components)
	}
}

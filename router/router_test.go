// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/reminders"
	"github.com/danielhkuo/quickly-meet/store"
	"github.com/danielhkuo/quickly-meet/testutil"
)

type stubRunner struct {
	calls int
}

func (s *stubRunner) Run(ctx context.Context) (reminders.Report, error) {
	s.calls++
	return reminders.Report{Sent: []string{}, Errors: []string{}}, nil
}

func newTestRouter(t *testing.T) (*http.ServeMux, *stubRunner) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveRun(metrics.OutcomeCompleted, 0, 0, 0)

	runner := &stubRunner{}
	return NewRouter(store.New(db), cfg, runner, metrics.Handler(reg)), runner
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	expected := "quickly-meet API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "reminder_runs_total") {
		t.Errorf("Expected reminder metrics in scrape output, got:\n%s", w.Body.String())
	}
}

func TestSendRemindersRoute(t *testing.T) {
	mux, runner := newTestRouter(t)
	cfg := testutil.GetTestConfig()

	testCases := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"wrong token", "Bearer wrong", http.StatusUnauthorized},
		{"malformed header", "Token " + cfg.CronSecret, http.StatusBadRequest},
		{"valid token", "Bearer " + cfg.CronSecret, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/house-keeping/send-reminders", nil)
			if tc.authorization != "" {
				req.Header.Set("Authorization", tc.authorization)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}

	if runner.calls != 1 {
		t.Errorf("Expected exactly one authorized run, got %d", runner.calls)
	}
}

func TestSendRemindersRoute_SecretUnset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.CronSecret = ""

	runner := &stubRunner{}
	mux := NewRouter(store.New(db), cfg, runner, nil)

	req := httptest.NewRequest("GET", "/api/house-keeping/send-reminders", nil)
	req.Header.Set("Authorization", "Bearer test-cron-secret")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	if runner.calls != 0 {
		t.Error("Expected no run without a configured secret")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"POST", "/api/house-keeping/send-reminders"},
		{"DELETE", "/polls/test-id/duplicate"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	pollID := testutil.CreateTestPoll(t, db, testutil.PollFixture{})
	mux := NewRouter(store.New(db), cfg, &stubRunner{}, nil)

	req := httptest.NewRequest("GET", "/polls/"+pollID+"/duplicate", nil)
	req.Header.Set("X-Admin-Key", auth.GenerateAdminKey(pollID, cfg.AdminKeySalt))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with valid admin key, got %d. Body: %s", w.Code, w.Body.String())
	}
}

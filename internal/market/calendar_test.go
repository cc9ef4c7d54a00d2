package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"finbot/internal/errors"
)

func calendarServer(t *testing.T, rows []map[string]interface{}) (*httptest.Server, *url.Values) {
	t.Helper()
	var captured url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"economicCalendar": rows})
	}))
	return srv, &captured
}

func TestCalendarWindowAndFiltering(t *testing.T) {
	rows := []map[string]interface{}{
		{"country": "US", "event": "Nonfarm Payrolls", "impact": "high",
			"time": "2024-03-05 13:30:00", "actual": 303.0, "estimate": 200.0, "prev": 256.0},
		{"country": "US", "event": "Trade Balance", "impact": "medium",
			"time": "2024-03-05 15:00:00"},
		// Next day: inside the provider window, outside the target date.
		{"country": "DE", "event": "Factory Orders", "impact": "high",
			"time": "2024-03-06 07:00:00"},
	}
	srv, query := calendarServer(t, rows)
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	events, err := c.Calendar(context.Background(), date)
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}

	if got := (*query).Get("from"); got != "2024-03-05" {
		t.Errorf("from = %q", got)
	}
	if got := (*query).Get("to"); got != "2024-03-06" {
		t.Errorf("to = %q", got)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 high-impact event on the date, got %d", len(events))
	}
	ev := events[0]
	if ev.Event != "Nonfarm Payrolls" || ev.Zone != "US" {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Actual == nil || *ev.Actual != 303.0 {
		t.Errorf("actual = %v", ev.Actual)
	}
	if ev.Forecast == nil || *ev.Forecast != 200.0 {
		t.Errorf("forecast = %v", ev.Forecast)
	}
}

func TestCalendarNoEventsForDate(t *testing.T) {
	srv, _ := calendarServer(t, nil)
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	date := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := c.Calendar(context.Background(), date)
	if !errors.Is(err, errors.ErrNoEvents) {
		t.Errorf("expected ErrNoEvents, got %v", err)
	}
}

func TestCalendarNoHighImpactEvents(t *testing.T) {
	rows := []map[string]interface{}{
		{"country": "US", "event": "Trade Balance", "impact": "medium",
			"time": "2024-03-05 15:00:00"},
	}
	srv, _ := calendarServer(t, rows)
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := c.Calendar(context.Background(), date)
	if !errors.Is(err, errors.ErrNoHighImpactEvents) {
		t.Errorf("expected ErrNoHighImpactEvents, got %v", err)
	}
}

func TestCalendarUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	_, err := c.Calendar(context.Background(), time.Now())
	var upstream *errors.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Provider != "finnhub" || upstream.Operation != "calendar" {
		t.Errorf("unexpected upstream context %+v", upstream)
	}
}

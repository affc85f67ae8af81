package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meltforce/liftsight/internal/analytics"
)

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
	if info.DisplayName != "Local Dev User" {
		t.Errorf("display_name = %q, want %q", info.DisplayName, "Local Dev User")
	}
}

// TestHandleMeResolvedUser verifies the /api/v1/me endpoint returns the
// identity stored by the resolving middleware.
func TestHandleMeResolvedUser(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" {
		t.Errorf("login = %q, want %q", info.Login, "alice@example.com")
	}
}

// TestHandleIngestBadJSON verifies malformed payloads are rejected
// before any storage work happens.
func TestHandleIngestBadJSON(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", nil)
	rec := httptest.NewRecorder()

	s.handleIngest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  analytics.RangeSpec
	}{
		{"default is last 7 days", "", analytics.LastNDays(7)},
		{"explicit 7d", "range=7d", analytics.LastNDays(7)},
		{"today", "range=today", analytics.RangeSpec{Kind: analytics.RangeToday}},
		{"30d", "range=30d", analytics.LastNDays(30)},
		{"90d", "range=90d", analytics.LastNDays(90)},
		{"specific date", "date=2025-06-16", analytics.RangeSpec{
			Kind: analytics.RangeSpecificDate,
			Date: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts?"+tt.query, nil)
			got, err := parseRange(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind != tt.want.Kind || got.Days != tt.want.Days || !got.Date.Equal(tt.want.Date) {
				t.Errorf("parseRange(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestParseRangeInvalid(t *testing.T) {
	for _, query := range []string{"range=14d", "range=yesterday", "date=16-06-2025"} {
		req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		if _, err := parseRange(req); err == nil {
			t.Errorf("parseRange(%q) accepted invalid input", query)
		}
	}
}

// TestQueryWindowCoversRange verifies the database window always
// contains every workout the in-memory filter can accept.
func TestQueryWindowCoversRange(t *testing.T) {
	now := time.Date(2025, 6, 16, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		spec analytics.RangeSpec
		date time.Time
	}{
		{"today includes morning workout", analytics.RangeSpec{Kind: analytics.RangeToday},
			time.Date(2025, 6, 16, 7, 0, 0, 0, time.UTC)},
		{"7d includes boundary day", analytics.LastNDays(7),
			now.AddDate(0, 0, -7)},
		{"7d includes now", analytics.LastNDays(7), now},
		{"specific date includes evening", analytics.RangeSpec{
			Kind: analytics.RangeSpecificDate,
			Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		}, time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := queryWindow(tt.spec, now)
			if tt.date.Before(start) || !tt.date.Before(end) {
				t.Errorf("window [%v, %v) excludes %v", start, end, tt.date)
			}
		})
	}
}

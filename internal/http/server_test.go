package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"clubfund/internal/core"
	applog "clubfund/internal/log"
	"clubfund/internal/services"
	"clubfund/internal/sheets"
	"clubfund/internal/sheets/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	err := sheets.SaveMembers(context.Background(), store, []core.Member{
		{Name: "Alice", DefaultLossFee: 5000},
		{Name: "Bob", DefaultLossFee: 7000},
	})
	if err != nil {
		t.Fatalf("seed members: %v", err)
	}

	logger := applog.New(applog.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
	srv := NewServer(":0",
		services.NewMatchService(store, nil, core.SplitByLosingTeam),
		services.NewFundService(store, nil),
		services.NewReportService(store),
		logger)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv, store
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := get(t, srv, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}
	if rec := get(t, srv, "/readyz"); rec.Code != http.StatusOK {
		t.Errorf("readyz = %d", rec.Code)
	}
}

func TestIndexRenders(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("index = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Record matches") {
		t.Error("index missing match form")
	}
}

func TestIndexRejectsUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := get(t, srv, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path = %d, want 404", rec.Code)
	}
}

func TestCreateMatchAndDayView(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(t, srv, "/matches", url.Values{
		"date":    {"2025-07-15"},
		"winners": {"X Y"},
		"losers":  {"Alice Bob"},
		"note":    {"evening"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create match = %d: %s", rec.Code, rec.Body)
	}

	day := get(t, srv, "/ui/day-matches?date=2025-07-15")
	if day.Code != http.StatusOK {
		t.Fatalf("day view = %d", day.Code)
	}
	if !strings.Contains(day.Body.String(), "Alice, Bob") {
		t.Errorf("day view missing losers: %s", day.Body)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		form url.Values
		want int
	}{
		{"bad date", url.Values{"date": {"15/07/2025"}, "winners": {"A"}, "losers": {"B"}}, http.StatusBadRequest},
		{"empty losers", url.Values{"date": {"2025-07-15"}, "winners": {"A"}, "losers": {""}}, http.StatusBadRequest},
		{"team count mismatch", url.Values{"date": {"2025-07-15"}, "winners": {"A, B"}, "losers": {"C"}}, http.StatusBadRequest},
		{"negative price", url.Values{"date": {"2025-07-15"}, "winners": {"A"}, "losers": {"B"}, "price": {"-1"}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postForm(t, srv, "/matches", tt.form); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCreateFund(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(t, srv, "/funds", url.Values{
		"date":   {"2025-07-01"},
		"note":   {"dues"},
		"amount": {"90000"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create fund = %d: %s", rec.Code, rec.Body)
	}

	zero := postForm(t, srv, "/funds", url.Values{
		"date":   {"2025-07-01"},
		"note":   {"nothing"},
		"amount": {"0"},
	})
	if zero.Code != http.StatusBadRequest {
		t.Errorf("zero amount = %d, want 400", zero.Code)
	}
}

func TestPeriodReport(t *testing.T) {
	srv, _ := newTestServer(t)

	postForm(t, srv, "/matches", url.Values{
		"date":    {"2025-07-15"},
		"winners": {"X Y"},
		"losers":  {"Alice Bob"},
	})

	rec := get(t, srv, "/ui/period-report?year=2025&month=7")
	if rec.Code != http.StatusOK {
		t.Fatalf("report = %d", rec.Code)
	}
	// Alice 5000 + Bob 7000
	if !strings.Contains(rec.Body.String(), "12,000") {
		t.Errorf("report missing loss total: %s", rec.Body)
	}
}

func TestFundSummaryRecomputesSettlements(t *testing.T) {
	srv, _ := newTestServer(t)

	postForm(t, srv, "/matches", url.Values{
		"date":    {"2025-07-15"},
		"winners": {"X Y"},
		"losers":  {"Alice Bob"},
	})

	rec := get(t, srv, "/ui/fund-summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("fund summary = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Monthly settlement for month 7") {
		t.Errorf("summary missing settlement row: %s", body)
	}
	if !strings.Contains(body, "12,000") {
		t.Errorf("summary missing balance: %s", body)
	}
}

func TestMembersPage(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/members")
	if rec.Code != http.StatusOK {
		t.Fatalf("members = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Alice") {
		t.Error("members page missing Alice")
	}
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		in   core.Amount
		want string
	}{
		{0, "0 ₫"},
		{5000, "5,000 ₫"},
		{1234567, "1,234,567 ₫"},
		{-12000, "-12,000 ₫"},
	}
	for _, tt := range tests {
		if got := formatVND(tt.in); got != tt.want {
			t.Errorf("formatVND(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRateLimiterAllows60PerMinute(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request 61 should be rejected")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other client should be unaffected")
	}
}

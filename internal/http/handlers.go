package http

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"clubfund/internal/core"
	applog "clubfund/internal/log"
	"clubfund/internal/services"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady verifies the store is reachable before reporting ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusServiceUnavailable)
		return
	}
	if _, err := s.reports.Members(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Readiness check failed", applog.FieldError, err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	members, err := s.reports.Members(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Member list error", applog.FieldError, err)
	}

	now := time.Now()
	data := struct {
		Today   string
		Year    int
		Month   int
		Members []core.Member
	}{
		Today:   now.Format("2006-01-02"),
		Year:    now.Year(),
		Month:   int(now.Month()),
		Members: members,
	}
	s.render(w, r, "index.html", data)
}

// handleCreateMatch records the outcome of one play session.
func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	date, err := parseFormDate(r.FormValue("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	var price core.Amount
	if v := strings.TrimSpace(r.FormValue("price")); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil || p < 0 {
			http.Error(w, "invalid price", http.StatusBadRequest)
			return
		}
		price = core.Amount(p)
	}

	recs, err := s.matches.SubmitMatch(r.Context(), date,
		sanitizeInput(r.FormValue("winners")),
		sanitizeInput(r.FormValue("losers")),
		sanitizeInput(r.FormValue("note")),
		price)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<div class="ok">Recorded %d match(es) on %s</div>`, len(recs), date)
}

// handleCreateFund records one manual fund movement.
func (s *Server) handleCreateFund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	date, err := parseFormDate(r.FormValue("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("amount")), 10, 64)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	if err := s.funds.AppendFund(r.Context(), date, sanitizeInput(r.FormValue("note")), core.Amount(amount)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<div class="ok">Recorded %s on %s</div>`, formatVND(core.Amount(amount)), date)
}

// handleDayMatches lists the stored match rows for one day.
func (s *Server) handleDayMatches(w http.ResponseWriter, r *http.Request) {
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}
	date, err := parseFormDate(dateStr)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	recs, err := s.matches.ListMatchesByDay(r.Context(), date)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	data := struct {
		Date    core.Date
		Matches []core.MatchRecord
	}{Date: date, Matches: recs}
	s.render(w, r, "day_matches.html", data)
}

// handlePeriodReport renders the aggregated fee report for a month or an
// explicit start/end range.
func (s *Server) handlePeriodReport(w http.ResponseWriter, r *http.Request) {
	var p core.Period
	var title string

	start := strings.TrimSpace(r.URL.Query().Get("start"))
	end := strings.TrimSpace(r.URL.Query().Get("end"))
	if start != "" && end != "" {
		from, err := parseFormDate(start)
		if err != nil {
			http.Error(w, "invalid start date", http.StatusBadRequest)
			return
		}
		to, err := parseFormDate(end)
		if err != nil {
			http.Error(w, "invalid end date", http.StatusBadRequest)
			return
		}
		p = core.RangePeriod(from, to)
		title = fmt.Sprintf("%s to %s", from, to)
	} else {
		year, month := parseYearMonth(r)
		p = core.MonthPeriod(year, month)
		title = fmt.Sprintf("%02d/%d", month, year)
	}

	report, err := s.reports.BuildReport(r.Context(), p)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	data := struct {
		Title  string
		Report core.PeriodReport
	}{Title: title, Report: report}
	s.render(w, r, "period_report.html", data)
}

// handleFundSummary refreshes settlements, then renders the fund page.
func (s *Server) handleFundSummary(w http.ResponseWriter, r *http.Request) {
	if _, err := s.funds.RecomputeSettlements(r.Context()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	summary, err := s.reports.FundSummary(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	type monthRow struct {
		Month core.YearMonth
		Total core.Amount
	}
	var months []monthRow
	for ym, total := range summary.MonthlyTotals {
		months = append(months, monthRow{Month: ym, Total: total})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Month.Year != months[j].Month.Year {
			return months[i].Month.Year < months[j].Month.Year
		}
		return months[i].Month.Month < months[j].Month.Month
	})

	data := struct {
		Summary services.FundSummary
		Months  []monthRow
	}{Summary: summary, Months: months}
	s.render(w, r, "fund_summary.html", data)
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.reports.Members(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	data := struct {
		Members   []core.Member
		WalkInFee core.Amount
	}{Members: members, WalkInFee: core.WalkInFee}
	s.render(w, r, "members.html", data)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			applog.FieldError, err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeServiceError maps validation errors to 400 and everything else to 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyTeams),
		errors.Is(err, core.ErrTeamCountMismatch),
		errors.Is(err, core.ErrZeroAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.ErrorContext(r.Context(), "Request failed", applog.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

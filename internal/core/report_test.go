package core

import "testing"

func TestBuildReport(t *testing.T) {
	rates := testRates()
	matches := []MatchRecord{
		// 3 losses at 5000 = 15000 for July
		{Date: NewDate(2025, 7, 10), Losers: []string{"Alice"}, PriceOverride: NoOverride},
		{Date: NewDate(2025, 7, 11), Losers: []string{"Alice"}, PriceOverride: NoOverride},
		{Date: NewDate(2025, 7, 12), Losers: []string{"Alice"}, PriceOverride: NoOverride},
		// outside the period
		{Date: NewDate(2025, 8, 1), Losers: []string{"Bob"}, PriceOverride: NoOverride},
	}
	funds := RecomputeSettlements([]FundTransaction{
		{Date: NewDate(2025, 7, 3), Note: "shuttlecocks", Amount: -5000},
		{Date: NewDate(2025, 8, 3), Note: "dues", Amount: 90000},
	}, matches, rates)

	report := BuildReport(matches, funds, rates, MonthPeriod(2025, 7))

	if report.LossTotal != 15000 {
		t.Fatalf("LossTotal = %d, want 15000", report.LossTotal)
	}
	if report.FundTotal != -5000 {
		t.Fatalf("FundTotal = %d, want -5000 (settlements excluded)", report.FundTotal)
	}
	if report.GrandTotal != 10000 {
		t.Fatalf("GrandTotal = %d, want 10000", report.GrandTotal)
	}
	if len(report.FundRows) != 1 || report.FundRows[0].Note != "shuttlecocks" {
		t.Fatalf("FundRows must hold manual entries only: %+v", report.FundRows)
	}
	if len(report.ByMember) != 1 || report.ByMember[0].LossCount != 3 {
		t.Fatalf("unexpected member totals: %+v", report.ByMember)
	}

	// the settlement row still counts toward the ledger balance
	balance := RunningBalance(funds)
	if balance != -5000+90000+15000+7000 { // August settlement is Bob's 7000
		t.Fatalf("RunningBalance = %d", balance)
	}
}

func TestBuildReportEmptyPeriod(t *testing.T) {
	report := BuildReport(nil, nil, RateTable{}, MonthPeriod(2025, 1))
	if report.LossTotal != 0 || report.FundTotal != 0 || report.GrandTotal != 0 {
		t.Fatalf("empty report has non-zero totals: %+v", report)
	}
	if len(report.LossRows) != 0 || len(report.FundRows) != 0 {
		t.Fatalf("empty report has rows: %+v", report)
	}
}

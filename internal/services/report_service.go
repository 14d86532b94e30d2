package services

import (
	"context"
	"fmt"

	"clubfund/internal/core"
	"clubfund/internal/sheets"
)

// ReportService composes read-only views over the stored tables.
type ReportService struct {
	store sheets.TableStore
}

func NewReportService(store sheets.TableStore) *ReportService {
	return &ReportService{store: store}
}

// BuildReport loads all three tables and composes the period report.
func (s *ReportService) BuildReport(ctx context.Context, p core.Period) (core.PeriodReport, error) {
	matches, err := sheets.LoadMatches(ctx, s.store)
	if err != nil {
		return core.PeriodReport{}, fmt.Errorf("load matches: %w", err)
	}
	members, err := sheets.LoadMembers(ctx, s.store)
	if err != nil {
		return core.PeriodReport{}, fmt.Errorf("load members: %w", err)
	}
	funds, err := sheets.LoadFunds(ctx, s.store)
	if err != nil {
		return core.PeriodReport{}, fmt.Errorf("load funds: %w", err)
	}
	return core.BuildReport(matches, funds, core.NewRateTable(members), p), nil
}

// FundSummary is the fund page view model.
type FundSummary struct {
	Transactions  []core.FundTransaction
	MonthlyTotals map[core.YearMonth]core.Amount
	Balance       core.Amount
}

// FundSummary composes the fund page from the current ledger. Callers
// wanting fresh settlement rows run FundService.RecomputeSettlements first.
func (s *ReportService) FundSummary(ctx context.Context) (FundSummary, error) {
	funds, err := sheets.LoadFunds(ctx, s.store)
	if err != nil {
		return FundSummary{}, fmt.Errorf("load funds: %w", err)
	}
	return FundSummary{
		Transactions:  funds,
		MonthlyTotals: core.MonthlyTotals(funds),
		Balance:       core.RunningBalance(funds),
	}, nil
}

// Members returns the registered member list.
func (s *ReportService) Members(ctx context.Context) ([]core.Member, error) {
	members, err := sheets.LoadMembers(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	return members, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"clubfund/internal/core"
	"clubfund/internal/sheets"
)

// FundService maintains the fund ledger: manual entries plus the derived
// monthly settlement rows.
type FundService struct {
	store    sheets.TableStore
	notifier SyncNotifier
}

func NewFundService(store sheets.TableStore, notifier SyncNotifier) *FundService {
	return &FundService{store: store, notifier: notifier}
}

// AppendFund records one manual fund movement. Zero amounts are rejected,
// a movement must be an income or an expense.
func (s *FundService) AppendFund(ctx context.Context, date core.Date, note string, amount core.Amount) error {
	if amount == 0 {
		return core.ErrZeroAmount
	}

	funds, err := sheets.LoadFunds(ctx, s.store)
	if err != nil {
		return fmt.Errorf("load funds: %w", err)
	}
	funds = append(funds, core.FundTransaction{Date: date, Note: note, Amount: amount})
	if err := sheets.SaveFunds(ctx, s.store, funds); err != nil {
		return fmt.Errorf("save funds: %w", err)
	}

	slog.InfoContext(ctx, "Fund movement recorded",
		"date", date.String(),
		"amount", int64(amount))

	s.notify(ctx, sheets.TableFunds)
	return nil
}

// RecomputeSettlements refreshes the derived settlement rows from the match
// log and stores the result. Safe to run on every fund page view: the
// outcome depends only on current matches and member rates.
func (s *FundService) RecomputeSettlements(ctx context.Context) ([]core.FundTransaction, error) {
	matches, err := sheets.LoadMatches(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	members, err := sheets.LoadMembers(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	funds, err := sheets.LoadFunds(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("load funds: %w", err)
	}

	updated := core.RecomputeSettlements(funds, matches, core.NewRateTable(members))
	if err := sheets.SaveFunds(ctx, s.store, updated); err != nil {
		return nil, fmt.Errorf("save funds: %w", err)
	}

	slog.InfoContext(ctx, "Settlements recomputed",
		"rows", len(updated),
		"matches", len(matches))

	s.notify(ctx, sheets.TableFunds)
	return updated, nil
}

func (s *FundService) notify(ctx context.Context, table string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishTableSync(ctx, table); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"table", table, "error", err)
	}
}

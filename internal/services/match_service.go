package services

import (
	"context"
	"fmt"
	"log/slog"

	"clubfund/internal/core"
	"clubfund/internal/sheets"
)

// MatchService handles match submission and day listings.
type MatchService struct {
	store    sheets.TableStore
	notifier SyncNotifier
	policy   core.FeeSplitPolicy
}

func NewMatchService(store sheets.TableStore, notifier SyncNotifier, policy core.FeeSplitPolicy) *MatchService {
	return &MatchService{store: store, notifier: notifier, policy: policy}
}

// SubmitMatch validates and stores the outcome of one play session.
// Winners and losers are comma-separated team lists; the i-th winner team
// played the i-th loser team, so the counts must match. A positive
// totalPrice is a whole-team price divided into a per-person override.
func (s *MatchService) SubmitMatch(ctx context.Context, date core.Date, winners, losers, note string, totalPrice core.Amount) ([]core.MatchRecord, error) {
	winnerTeams := core.SplitTeams(winners)
	loserTeams := core.SplitTeams(losers)

	if len(winnerTeams) == 0 || len(loserTeams) == 0 {
		return nil, core.ErrEmptyTeams
	}
	if len(winnerTeams) != len(loserTeams) {
		return nil, fmt.Errorf("%w: %d winner teams, %d loser teams",
			core.ErrTeamCountMismatch, len(winnerTeams), len(loserTeams))
	}

	recs := make([]core.MatchRecord, 0, len(loserTeams))
	for i, team := range loserTeams {
		divisor := s.policy.Divisor(len(winnerTeams[i]), len(team))
		recs = append(recs, core.MatchRecord{
			Date:          date,
			Losers:        team,
			Note:          note,
			PriceOverride: core.SplitOverride(totalPrice, divisor),
		})
	}

	if err := sheets.AppendMatches(ctx, s.store, recs); err != nil {
		return nil, fmt.Errorf("append matches: %w", err)
	}

	slog.InfoContext(ctx, "Matches recorded",
		"date", date.String(),
		"matches", len(recs))

	s.notify(ctx, sheets.TableMatches)
	return recs, nil
}

// ListMatchesByDay returns the stored match rows for one calendar day.
func (s *MatchService) ListMatchesByDay(ctx context.Context, date core.Date) ([]core.MatchRecord, error) {
	recs, err := sheets.LoadMatches(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	var out []core.MatchRecord
	for _, rec := range recs {
		if !rec.Date.IsZero() && rec.Date.Equal(date.Time) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MatchService) notify(ctx context.Context, table string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishTableSync(ctx, table); err != nil {
		// Don't fail the request, the table is saved locally.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"table", table, "error", err)
	}
}

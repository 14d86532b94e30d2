// Package worker mirrors locally saved tables out to the remote sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"clubfund/internal/amqp"
	"clubfund/internal/sheets"
)

// SyncWorker copies tables from the local store to the remote one. Tables
// are mirrored wholesale, so replaying a sync message is harmless and the
// remote always holds the last locally saved state.
type SyncWorker struct {
	local  sheets.TableStore
	remote sheets.TableStore
}

func NewSyncWorker(local, remote sheets.TableStore) *SyncWorker {
	return &SyncWorker{local: local, remote: remote}
}

// SyncTable mirrors one table. A table with no local data yet is skipped,
// an empty mirror would wipe remote rows another writer may have added.
func (w *SyncWorker) SyncTable(ctx context.Context, name string) error {
	t, err := w.local.LoadTable(ctx, name)
	if err != nil {
		return fmt.Errorf("load local %s: %w", name, err)
	}
	if t == nil {
		slog.InfoContext(ctx, "No local data, skipping sync", "table", name)
		return nil
	}

	if err := w.remote.SaveTable(ctx, name, t); err != nil {
		return fmt.Errorf("save remote %s: %w", name, err)
	}

	slog.InfoContext(ctx, "Table synced",
		"table", name,
		"rows", len(t)-1)
	return nil
}

// HandleSyncMessage processes one table sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TableSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"table", msg.Table,
		"queued_at", msg.Timestamp)
	return w.SyncTable(ctx, msg.Table)
}

// SyncAll mirrors every table concurrently. This is the periodic backup
// path in case sync messages were lost.
func (w *SyncWorker) SyncAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range []string{sheets.TableMatches, sheets.TableFunds, sheets.TableMembers} {
		g.Go(func() error {
			return w.SyncTable(ctx, name)
		})
	}
	return g.Wait()
}

// RunPeriodic mirrors all tables on the given interval until the context
// ends. Failures are logged and retried on the next tick.
func (w *SyncWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Periodic sync stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			if err := w.SyncAll(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic sync failed", "error", err)
			}
		}
	}
}

// StartupSyncCheck seeds the local store from the remote on first run.
// Tables that already exist locally are left alone, local state wins.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	for _, name := range []string{sheets.TableMatches, sheets.TableFunds, sheets.TableMembers} {
		local, err := w.local.LoadTable(ctx, name)
		if err != nil {
			return fmt.Errorf("load local %s: %w", name, err)
		}
		if local != nil {
			continue
		}

		remote, err := w.remote.LoadTable(ctx, name)
		if err != nil {
			return fmt.Errorf("load remote %s: %w", name, err)
		}
		if remote == nil {
			continue
		}

		if err := w.local.SaveTable(ctx, name, remote); err != nil {
			return fmt.Errorf("seed local %s: %w", name, err)
		}
		slog.InfoContext(ctx, "Seeded local table from remote",
			"table", name,
			"rows", len(remote)-1)
	}
	return nil
}

// Package backend selects the table store implementation from config.
package backend

import (
	"context"
	"fmt"

	"clubfund/internal/config"
	"clubfund/internal/sheets"
	"clubfund/internal/sheets/google"
	"clubfund/internal/sheets/memory"
	"clubfund/internal/storage"
)

// New builds the configured table store. The returned cleanup func closes
// any held resources and is safe to call on a nil-error result only.
func New(ctx context.Context, cfg *config.Config) (sheets.TableStore, func() error, error) {
	switch cfg.DataBackend {
	case "memory":
		return memory.New(), func() error { return nil }, nil
	case "sheets":
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("init Google Sheets client: %w", err)
		}
		return cli, func() error { return nil }, nil
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open SQLite store: %w", err)
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

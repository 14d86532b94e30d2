// Package storage implements the TableStore port on SQLite. It is the
// local-first cache of the three club tables: the HTTP app reads and writes
// here, and the sync worker mirrors saved tables out to the Google sheet.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"clubfund/internal/core"
	"clubfund/internal/sheets"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ sheets.TableStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTable renders the named table in its canonical header-first shape,
// reusing the shared codecs so normalization stays in one place.
func (r *SQLiteRepository) LoadTable(ctx context.Context, name string) (sheets.Table, error) {
	switch name {
	case sheets.TableMatches:
		recs, err := r.loadMatches(ctx)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, nil
		}
		return sheets.EncodeMatches(recs), nil
	case sheets.TableFunds:
		txs, err := r.loadFunds(ctx)
		if err != nil {
			return nil, err
		}
		if len(txs) == 0 {
			return nil, nil
		}
		return sheets.EncodeFunds(txs), nil
	case sheets.TableMembers:
		members, err := r.loadMembers(ctx)
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, nil
		}
		return sheets.EncodeMembers(members), nil
	default:
		return nil, fmt.Errorf("unknown table %q", name)
	}
}

// SaveTable replaces the named table wholesale inside one transaction,
// preserving the store contract's last-write-wins behavior.
func (r *SQLiteRepository) SaveTable(ctx context.Context, name string, t sheets.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	switch name {
	case sheets.TableMatches:
		err = saveMatches(ctx, tx, sheets.DecodeMatches(t))
	case sheets.TableFunds:
		err = saveFunds(ctx, tx, sheets.DecodeFunds(t))
	case sheets.TableMembers:
		err = saveMembers(ctx, tx, sheets.DecodeMembers(t))
	default:
		return fmt.Errorf("unknown table %q", name)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	slog.InfoContext(ctx, "Table saved to SQLite", "table", name, "rows", max(len(t)-1, 0))
	return nil
}

func (r *SQLiteRepository) loadMatches(ctx context.Context) ([]core.MatchRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, losers, note, price_override FROM matches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []core.MatchRecord
	for rows.Next() {
		var dateStr, losers, note string
		var price int64
		if err := rows.Scan(&dateStr, &losers, &note, &price); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		date, _ := core.ParseDate(dateStr)
		out = append(out, core.MatchRecord{
			Date:          date,
			Losers:        core.SplitNames(losers),
			Note:          note,
			PriceOverride: core.Amount(price),
		})
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) loadFunds(ctx context.Context) ([]core.FundTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, note, amount FROM funds ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query funds: %w", err)
	}
	defer rows.Close()

	var out []core.FundTransaction
	for rows.Next() {
		var dateStr, note string
		var amount int64
		if err := rows.Scan(&dateStr, &note, &amount); err != nil {
			return nil, fmt.Errorf("scan fund row: %w", err)
		}
		date, _ := core.ParseDate(dateStr)
		out = append(out, core.FundTransaction{Date: date, Note: note, Amount: core.Amount(amount)})
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) loadMembers(ctx context.Context) ([]core.Member, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, default_loss_fee FROM members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var out []core.Member
	for rows.Next() {
		var name string
		var fee int64
		if err := rows.Scan(&name, &fee); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		out = append(out, core.Member{Name: name, DefaultLossFee: core.Amount(fee)})
	}
	return out, rows.Err()
}

func saveMatches(ctx context.Context, tx *sql.Tx, recs []core.MatchRecord) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}
	for _, rec := range recs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO matches (date, losers, note, price_override) VALUES (?, ?, ?, ?)`,
			rec.Date.String(), core.JoinNames(rec.Losers), rec.Note, int64(rec.PriceOverride))
		if err != nil {
			return fmt.Errorf("insert match row: %w", err)
		}
	}
	return nil
}

func saveFunds(ctx context.Context, tx *sql.Tx, txs []core.FundTransaction) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM funds`); err != nil {
		return fmt.Errorf("clear funds: %w", err)
	}
	for _, t := range txs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO funds (date, note, amount) VALUES (?, ?, ?)`,
			t.Date.String(), t.Note, int64(t.Amount))
		if err != nil {
			return fmt.Errorf("insert fund row: %w", err)
		}
	}
	return nil
}

func saveMembers(ctx context.Context, tx *sql.Tx, members []core.Member) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM members`); err != nil {
		return fmt.Errorf("clear members: %w", err)
	}
	for _, m := range members {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO members (name, default_loss_fee) VALUES (?, ?)`,
			m.Name, int64(m.DefaultLossFee))
		if err != nil {
			return fmt.Errorf("insert member row: %w", err)
		}
	}
	return nil
}

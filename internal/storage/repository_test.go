package storage

import (
	"context"
	"path/filepath"
	"testing"

	"clubfund/internal/sheets"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "clubfund.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadEmptyTables(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for _, name := range []string{sheets.TableMatches, sheets.TableFunds, sheets.TableMembers} {
		got, err := repo.LoadTable(ctx, name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if got != nil {
			t.Fatalf("empty %s should load as nil, got %v", name, got)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := sheets.Table{
		{"date", "losers", "note", "price_override"},
		{"15/07/2025", "Alice Bob", "evening", "12000"},
		{"16/07/2025", "Carol", "", "-1"},
	}
	if err := repo.SaveTable(ctx, sheets.TableMatches, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadTable(ctx, sheets.TableMatches)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	if got[1][1] != "Alice Bob" || got[1][3] != "12000" {
		t.Fatalf("row did not round trip: %v", got[1])
	}
}

func TestSaveReplacesWholesale(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := sheets.Table{{"date", "note", "amount"}, {"01/07/2025", "a", "1"}, {"02/07/2025", "b", "2"}}
	second := sheets.Table{{"date", "note", "amount"}, {"03/07/2025", "c", "3"}}

	if err := repo.SaveTable(ctx, sheets.TableFunds, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveTable(ctx, sheets.TableFunds, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadTable(ctx, sheets.TableFunds)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[1][1] != "c" {
		t.Fatalf("save must replace the table, got %v", got)
	}
}

func TestUnknownTable(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if _, err := repo.LoadTable(ctx, "nope"); err == nil {
		t.Fatal("expected error for unknown table")
	}
	if err := repo.SaveTable(ctx, "nope", nil); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

// Package memory provides an in-memory TableStore for tests and local
// development.
package memory

import (
	"context"
	"sync"

	"clubfund/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	tables map[string]sheets.Table
}

func New() *Store {
	return &Store{tables: make(map[string]sheets.Table)}
}

// LoadTable returns a copy of the named table; nil when it was never saved,
// which stands for "no data yet".
func (s *Store) LoadTable(_ context.Context, name string) (sheets.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTable(s.tables[name]), nil
}

// SaveTable replaces the named table wholesale, matching the store
// contract's full-overwrite semantics.
func (s *Store) SaveTable(_ context.Context, name string, t sheets.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = copyTable(t)
	return nil
}

func copyTable(t sheets.Table) sheets.Table {
	if t == nil {
		return nil
	}
	out := make(sheets.Table, len(t))
	for i, row := range t {
		out[i] = append([]string(nil), row...)
	}
	return out
}

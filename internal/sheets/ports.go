package sheets

import "context"

// Table names used by the backing store.
const (
	TableMatches = "matches"
	TableFunds   = "funds"
	TableMembers = "members"
)

// Table is a rectangular table of strings; the first row holds the column
// headers. An empty table means "no data yet", which is distinct from a
// store failure.
type Table [][]string

// TableStore is the port for the flat tabular backing store. SaveTable is a
// full overwrite; there is no partial or append primitive, so appends are
// read-modify-write at the call sites. A failing store must return the
// error, never an empty table.
type TableStore interface {
	LoadTable(ctx context.Context, name string) (Table, error)
	SaveTable(ctx context.Context, name string, t Table) error
}

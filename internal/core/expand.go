package core

// Expand splits a losing-team record into one fee entry per individual,
// resolving each person's unit fee against the rate table. A record with no
// names expands to nothing; that is a silent no-op, not an error.
func Expand(rec MatchRecord, rates RateTable) []FeeEntry {
	entries := make([]FeeEntry, 0, len(rec.Losers))
	for _, name := range rec.Losers {
		if name == "" {
			continue
		}
		entries = append(entries, FeeEntry{
			Date:       rec.Date,
			MemberName: name,
			LossCount:  1,
			UnitFee:    rates.Resolve(name, rec.PriceOverride),
			Note:       rec.Note,
		})
	}
	return entries
}

// ExpandAll expands every record in order.
func ExpandAll(recs []MatchRecord, rates RateTable) []FeeEntry {
	var entries []FeeEntry
	for _, rec := range recs {
		entries = append(entries, Expand(rec, rates)...)
	}
	return entries
}

package core

import "testing"

func TestExpand(t *testing.T) {
	rates := testRates()

	rec := MatchRecord{
		Date:          NewDate(2025, 7, 15),
		Losers:        []string{"Alice", "Stranger"},
		Note:          "evening",
		PriceOverride: NoOverride,
	}
	entries := Expand(rec, rates)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UnitFee != 5000 || entries[1].UnitFee != WalkInFee {
		t.Fatalf("unexpected fees: %d, %d", entries[0].UnitFee, entries[1].UnitFee)
	}
	for _, e := range entries {
		if e.LossCount != 1 {
			t.Fatalf("pre-aggregation loss count must be 1, got %d", e.LossCount)
		}
		if e.Note != "evening" {
			t.Fatalf("note not carried: %q", e.Note)
		}
	}

	// override wins for everyone on the team
	rec.PriceOverride = 9000
	for _, e := range Expand(rec, rates) {
		if e.UnitFee != 9000 {
			t.Fatalf("override not applied: %d", e.UnitFee)
		}
	}

	// zero parseable names expand to zero entries, silently
	if got := Expand(MatchRecord{Date: NewDate(2025, 7, 15)}, rates); len(got) != 0 {
		t.Fatalf("empty record expanded to %d entries", len(got))
	}
}

func TestPeriodContains(t *testing.T) {
	month := MonthPeriod(2025, 7)
	cases := []struct {
		d    Date
		want bool
	}{
		{NewDate(2025, 7, 1), true},
		{NewDate(2025, 7, 31), true}, // last day of month included
		{NewDate(2025, 8, 1), false}, // first day of next month excluded
		{NewDate(2025, 6, 30), false},
		{NewDate(2024, 7, 15), false}, // same month, wrong year
		{Date{}, false},               // unparsable dates never match
	}
	for _, tc := range cases {
		if got := month.Contains(tc.d); got != tc.want {
			t.Fatalf("month.Contains(%v) = %v, want %v", tc.d, got, tc.want)
		}
	}

	rng := RangePeriod(NewDate(2025, 7, 10), NewDate(2025, 7, 20))
	if !rng.Contains(NewDate(2025, 7, 10)) || !rng.Contains(NewDate(2025, 7, 20)) {
		t.Fatal("range boundaries must be inclusive")
	}
	if rng.Contains(NewDate(2025, 7, 21)) {
		t.Fatal("day after end_date must be excluded")
	}
	if rng.Contains(Date{}) {
		t.Fatal("zero date must be excluded from ranges")
	}
}

func TestAggregate(t *testing.T) {
	rates := testRates()
	d1 := NewDate(2025, 7, 10)
	d2 := NewDate(2025, 7, 11)
	matches := []MatchRecord{
		{Date: d1, Losers: []string{"Alice", "Bob"}, PriceOverride: NoOverride},
		{Date: d1, Losers: []string{"Alice"}, PriceOverride: NoOverride},
		{Date: d2, Losers: []string{"Alice"}, PriceOverride: 9000},
		{Date: Date{}, Losers: []string{"Alice"}, PriceOverride: NoOverride}, // bad date, filtered
	}
	rows := Aggregate(ExpandAll(matches, rates), MonthPeriod(2025, 7))

	// Alice d1 x2, Bob d1 x1, Alice d2 (different fee) x1
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].MemberName != "Alice" || rows[0].LossCount != 2 || rows[0].UnitFee != 5000 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].MemberName != "Bob" || rows[1].UnitFee != 7000 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if !rows[2].Date.Equal(d2.Time) || rows[2].UnitFee != 9000 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}

	// the arithmetic invariant: total is the product, recomputed
	row := rows[0]
	if row.TotalAmount() != 10000 {
		t.Fatalf("TotalAmount = %d, want 10000", row.TotalAmount())
	}
	row.LossCount = 3
	if row.TotalAmount() != 15000 {
		t.Fatalf("mutating LossCount must change the total, got %d", row.TotalAmount())
	}

	if total := LossTotal(rows); total != 15000+7000+9000 {
		t.Fatalf("LossTotal = %d", total)
	}
}

func TestSummarizeByMember(t *testing.T) {
	rates := testRates()
	rec := MatchRecord{
		Date:          NewDate(2025, 7, 10),
		Losers:        []string{"Alice", "Bob2"},
		PriceOverride: NoOverride,
	}
	// both known members at 5000 per the round-trip property
	rates["Bob2"] = 5000

	rows := Aggregate(Expand(rec, rates), MonthPeriod(2025, 7))
	byMember := SummarizeByMember(rows)
	if len(byMember) != 2 {
		t.Fatalf("expected 2 summary keys, got %d", len(byMember))
	}
	for k, v := range byMember {
		if v != 5000 {
			t.Fatalf("summary for %v = %d, want 5000", k, v)
		}
	}

	// different fees on the same day collapse into one per-member total
	rows = Aggregate(ExpandAll([]MatchRecord{
		{Date: NewDate(2025, 7, 10), Losers: []string{"Alice"}, PriceOverride: NoOverride},
		{Date: NewDate(2025, 7, 10), Losers: []string{"Alice"}, PriceOverride: 8000},
	}, rates), MonthPeriod(2025, 7))
	byMember = SummarizeByMember(rows)
	got := byMember[DayMember{Date: NewDate(2025, 7, 10), MemberName: "Alice"}]
	if got != 13000 {
		t.Fatalf("cross-fee summary = %d, want 13000", got)
	}
}

func TestTotalsByMember(t *testing.T) {
	rates := testRates()
	matches := []MatchRecord{
		{Date: NewDate(2025, 7, 10), Losers: []string{"Alice", "Bob"}, PriceOverride: NoOverride},
		{Date: NewDate(2025, 7, 12), Losers: []string{"Alice"}, PriceOverride: NoOverride},
	}
	totals := TotalsByMember(Aggregate(ExpandAll(matches, rates), MonthPeriod(2025, 7)))
	if len(totals) != 2 {
		t.Fatalf("expected 2 members, got %d", len(totals))
	}
	if totals[0].MemberName != "Alice" || totals[0].LossCount != 2 || totals[0].Total != 10000 {
		t.Fatalf("unexpected Alice totals: %+v", totals[0])
	}
	if totals[1].MemberName != "Bob" || totals[1].LossCount != 1 || totals[1].Total != 7000 {
		t.Fatalf("unexpected Bob totals: %+v", totals[1])
	}
}

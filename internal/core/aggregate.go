package core

import "sort"

// Period scopes a report to either an exact calendar month or an inclusive
// date range. Month != 0 selects the month form.
type Period struct {
	Year  int
	Month int
	Start Date
	End   Date
}

// MonthPeriod selects an exact (month, year) pair.
func MonthPeriod(year, month int) Period {
	return Period{Year: year, Month: month}
}

// RangePeriod selects an inclusive [start, end] date range.
func RangePeriod(start, end Date) Period {
	return Period{Start: start, End: end}
}

// Contains reports whether the date falls inside the period. Unparsable
// (zero) dates are never contained, which is how bad dates stay out of
// every report.
func (p Period) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	if p.Month != 0 {
		return d.Year() == p.Year && d.Month() == p.Month
	}
	return !d.Before(p.Start) && !d.After(p.End)
}

// AggregatedFeeRow is one bucket of expanded fee entries, keyed by
// (date, member, unit fee, note). The total is always recomputed from
// count and fee; it is never stored.
type AggregatedFeeRow struct {
	Date       Date
	MemberName string
	UnitFee    Amount
	Note       string
	LossCount  int
}

// TotalAmount is the bucket total, recomputed at read time.
func (r AggregatedFeeRow) TotalAmount() Amount {
	return Amount(r.LossCount) * r.UnitFee
}

// Aggregate buckets fee entries falling inside the period by
// (date, member, unit fee, note), summing loss counts. Output is sorted by
// (date, member, unit fee) ascending for deterministic display.
func Aggregate(entries []FeeEntry, p Period) []AggregatedFeeRow {
	type key struct {
		date Date
		name string
		fee  Amount
		note string
	}
	buckets := make(map[key]int)
	for _, e := range entries {
		if !p.Contains(e.Date) {
			continue
		}
		k := key{date: e.Date, name: e.MemberName, fee: e.UnitFee, note: e.Note}
		buckets[k] += e.LossCount
	}
	rows := make([]AggregatedFeeRow, 0, len(buckets))
	for k, count := range buckets {
		rows = append(rows, AggregatedFeeRow{
			Date:       k.date,
			MemberName: k.name,
			UnitFee:    k.fee,
			Note:       k.note,
			LossCount:  count,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date.Time) {
			return rows[i].Date.Before(rows[j].Date)
		}
		if rows[i].MemberName != rows[j].MemberName {
			return rows[i].MemberName < rows[j].MemberName
		}
		if rows[i].UnitFee != rows[j].UnitFee {
			return rows[i].UnitFee < rows[j].UnitFee
		}
		return rows[i].Note < rows[j].Note
	})
	return rows
}

// LossTotal sums the recomputed totals of all rows.
func LossTotal(rows []AggregatedFeeRow) Amount {
	var total Amount
	for _, r := range rows {
		total += r.TotalAmount()
	}
	return total
}

// DayMember keys the coarser per-person-per-day view.
type DayMember struct {
	Date       Date
	MemberName string
}

// SummarizeByMember collapses rows to (date, member) totals, summing across
// differing fees and notes for the same person on the same day.
func SummarizeByMember(rows []AggregatedFeeRow) map[DayMember]Amount {
	out := make(map[DayMember]Amount)
	for _, r := range rows {
		out[DayMember{Date: r.Date, MemberName: r.MemberName}] += r.TotalAmount()
	}
	return out
}

// MemberTotal is one member's standing over a whole period.
type MemberTotal struct {
	MemberName string
	LossCount  int
	Total      Amount
}

// TotalsByMember collapses rows to per-member loss counts and totals over
// the whole period, sorted by name ascending.
func TotalsByMember(rows []AggregatedFeeRow) []MemberTotal {
	counts := make(map[string]int)
	totals := make(map[string]Amount)
	for _, r := range rows {
		counts[r.MemberName] += r.LossCount
		totals[r.MemberName] += r.TotalAmount()
	}
	out := make([]MemberTotal, 0, len(counts))
	for name := range counts {
		out = append(out, MemberTotal{MemberName: name, LossCount: counts[name], Total: totals[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberName < out[j].MemberName })
	return out
}

package core

import (
	"fmt"
	"sort"
)

// SettlementNote is the fixed note template that keys a month's synthesized
// settlement transaction. Together with the last-day-of-month date it makes
// settlement rows recognizable and replaceable.
func SettlementNote(month int) string {
	return fmt.Sprintf("Monthly settlement for month %d", month)
}

// IsSettlement reports whether a transaction is a synthesized monthly
// settlement row (as opposed to a manual fund entry). Settlement rows are
// keyed by both the note template and the last-day-of-month date, so a
// manual entry that merely reuses the template text is not one.
func IsSettlement(tx FundTransaction) bool {
	if tx.Date.IsZero() {
		return false
	}
	if tx.Note != SettlementNote(tx.Date.Month()) {
		return false
	}
	return tx.Date.Equal(LastDayOfMonth(tx.Date.Year(), tx.Date.Month()).Time)
}

// RecomputeSettlements rebuilds the settlement rows of the fund ledger from
// the match records. All existing settlement rows are dropped and one fresh
// row per month with a non-zero loss total is appended, dated the last day
// of that month. The ledger is a materialized cache of monthly loss totals:
// recomputing is idempotent and safe to run on every view.
func RecomputeSettlements(funds []FundTransaction, matches []MatchRecord, rates RateTable) []FundTransaction {
	out := make([]FundTransaction, 0, len(funds))
	for _, tx := range funds {
		if IsSettlement(tx) {
			continue
		}
		out = append(out, tx)
	}

	entries := ExpandAll(matches, rates)
	months := make(map[YearMonth]struct{})
	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		months[YearMonthOf(e.Date)] = struct{}{}
	}

	keys := make([]YearMonth, 0, len(months))
	for ym := range months {
		keys = append(keys, ym)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Month < keys[j].Month
	})

	for _, ym := range keys {
		total := LossTotal(Aggregate(entries, MonthPeriod(ym.Year, ym.Month)))
		if total == 0 {
			continue
		}
		out = append(out, FundTransaction{
			Date:   LastDayOfMonth(ym.Year, ym.Month),
			Note:   SettlementNote(ym.Month),
			Amount: total,
		})
	}
	return out
}

// MonthlyTotals groups all transactions, manual and settlement alike, by
// calendar month. Rows with unparsable dates are skipped.
func MonthlyTotals(txs []FundTransaction) map[YearMonth]Amount {
	out := make(map[YearMonth]Amount)
	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		out[YearMonthOf(tx.Date)] += tx.Amount
	}
	return out
}

// RunningBalance is the signed sum over every transaction in the ledger.
func RunningBalance(txs []FundTransaction) Amount {
	var total Amount
	for _, tx := range txs {
		total += tx.Amount
	}
	return total
}

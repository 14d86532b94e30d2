package core

// PeriodReport is the composed view for one period: aggregated loss rows,
// the manual fund entries of the same period, and their combined total.
// Settlement rows are excluded here; they exist for balance bookkeeping and
// would double-count the loss total they were derived from. Callers that
// need the true balance use RunningBalance over the full ledger.
type PeriodReport struct {
	LossRows   []AggregatedFeeRow
	ByMember   []MemberTotal
	LossTotal  Amount
	FundRows   []FundTransaction
	FundTotal  Amount
	GrandTotal Amount
}

// BuildReport derives the period report from a snapshot of the stored
// tables. Nothing is cached: every call recomputes from the raw records.
func BuildReport(matches []MatchRecord, funds []FundTransaction, rates RateTable, p Period) PeriodReport {
	rows := Aggregate(ExpandAll(matches, rates), p)

	var fundRows []FundTransaction
	var fundTotal Amount
	for _, tx := range funds {
		if IsSettlement(tx) || !p.Contains(tx.Date) {
			continue
		}
		fundRows = append(fundRows, tx)
		fundTotal += tx.Amount
	}

	lossTotal := LossTotal(rows)
	return PeriodReport{
		LossRows:   rows,
		ByMember:   TotalsByMember(rows),
		LossTotal:  lossTotal,
		FundRows:   fundRows,
		FundTotal:  fundTotal,
		GrandTotal: lossTotal + fundTotal,
	}
}

// Package core implements the fee ledger computation engine: rate
// resolution, loss expansion, period aggregation, fund settlement and
// period reports. It is pure computation; all I/O lives in adapters.
package core

// RateTable maps member names to their configured default loss fee.
type RateTable map[string]Amount

// NewRateTable builds a rate table from the members list. Later duplicates
// win, matching the stored table's last-write semantics.
func NewRateTable(members []Member) RateTable {
	t := make(RateTable, len(members))
	for _, m := range members {
		t[m.Name] = m.DefaultLossFee
	}
	return t
}

// Resolve decides the fee one individual owes for one loss.
// A positive override wins outright. Otherwise the member's configured
// default applies, falling back to the walk-in fee for unknown names or
// non-positive configured defaults. The result is always positive.
func (t RateTable) Resolve(name string, override Amount) Amount {
	if override > 0 {
		return override
	}
	if fee, ok := t[name]; ok && fee > 0 {
		return fee
	}
	return WalkInFee
}

// FeeSplitPolicy decides how a whole-team price entered at submission time
// is divided into a per-person override.
type FeeSplitPolicy string

const (
	// SplitByLosingTeam divides the entered price by the losing team's
	// size. This is the default.
	SplitByLosingTeam FeeSplitPolicy = "losing-team"

	// SplitByAllPlayers divides the entered price by the total number of
	// players in the match, winners included.
	SplitByAllPlayers FeeSplitPolicy = "all-players"
)

// IsValid reports whether p names a known policy.
func (p FeeSplitPolicy) IsValid() bool {
	return p == SplitByLosingTeam || p == SplitByAllPlayers
}

// Divisor returns the party size the entered price is divided by.
func (p FeeSplitPolicy) Divisor(winners, losers int) int {
	if p == SplitByAllPlayers {
		return winners + losers
	}
	return losers
}

// SplitOverride divides a whole-team price into a per-person override.
// Division truncates toward zero. Non-positive inputs yield NoOverride, and
// so does a share that truncates to zero: the stored price column knows only
// the -1 sentinel and positive per-person prices.
func SplitOverride(total Amount, partySize int) Amount {
	if total <= 0 || partySize <= 0 {
		return NoOverride
	}
	share := total / Amount(partySize)
	if share <= 0 {
		return NoOverride
	}
	return share
}

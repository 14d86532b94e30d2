package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

const (
	// WalkInFee is charged to names that have no member record.
	WalkInFee Amount = 5000

	// DateLayout is the external text form of calendar dates (DD/MM/YYYY).
	DateLayout = "02/01/2006"

	// NoOverride marks a match record carrying no explicit per-person price.
	NoOverride Amount = -1
)

type (
	// Amount is a whole-unit currency amount (VND). Fund flows are signed:
	// positive = income, negative = expense.
	Amount int64

	// Date is a calendar day. The zero value marks an unparsable date;
	// such dates are tolerated and excluded by period filters.
	Date struct {
		time.Time
	}

	// Member is a registered club member with a configured loss fee.
	Member struct {
		Name           string
		DefaultLossFee Amount
	}

	// MatchRecord is one logged losing team: every listed individual owes
	// a fee for the loss. PriceOverride is per person; NoOverride means
	// the member default (or walk-in fee) applies.
	MatchRecord struct {
		Date          Date
		Losers        []string
		Note          string
		PriceOverride Amount
	}

	// FeeEntry is one individual's share of a single loss.
	FeeEntry struct {
		Date       Date
		MemberName string
		LossCount  int
		UnitFee    Amount
		Note       string
	}

	// FundTransaction is one row of the fund ledger, manual or settlement.
	FundTransaction struct {
		Date   Date
		Note   string
		Amount Amount
	}

	// YearMonth identifies a calendar month.
	YearMonth struct {
		Year  int
		Month int
	}
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrEmptyTeams        = errors.New("empty winner or loser list")
	ErrTeamCountMismatch = errors.New("winner and loser team counts differ")
	ErrZeroAmount        = errors.New("fund amount must be non-zero")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the external DD/MM/YYYY form. On failure it returns the
// zero Date together with ErrInvalidDate; callers loading stored tables keep
// the zero value instead of failing.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the external DD/MM/YYYY form; empty for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Day returns the day of the month.
func (d Date) Day() int { return d.Time.Day() }

// Month returns the month as 1-12.
func (d Date) Month() int { return int(d.Time.Month()) }

// Year returns the year.
func (d Date) Year() int { return d.Time.Year() }

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

// After reports whether d falls on a later day than other.
func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

// LastDayOfMonth returns the final calendar day of the given month.
func LastDayOfMonth(year, month int) Date {
	return Date{Time: time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)}
}

// YearMonthOf extracts the calendar month of a date. Only meaningful for
// non-zero dates.
func YearMonthOf(d Date) YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

// SplitNames tokenizes a free-text name list into individual names.
// Commas and whitespace both separate names; empty tokens are dropped.
// This is the single tokenization boundary for loser lists.
func SplitNames(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// JoinNames renders a name list back to its stored single-cell form.
func JoinNames(names []string) string {
	return strings.Join(names, " ")
}

// SplitTeams tokenizes a comma-separated list of teams, each team being a
// whitespace-separated list of names. Empty teams are dropped.
func SplitTeams(s string) [][]string {
	var teams [][]string
	for _, part := range strings.Split(s, ",") {
		team := strings.Fields(part)
		if len(team) > 0 {
			teams = append(teams, team)
		}
	}
	return teams
}

// Package sheets defines the tabular-store port and the codecs between
// stored tables and domain records. All normalization of raw rows lives
// here: trimming, defaulting of missing columns, and tolerant parsing of
// dates and numbers. Consumers never re-derive this from raw cells.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"clubfund/internal/core"
)

// Canonical column headers.
const (
	ColDate   = "date"
	ColLosers = "losers"
	ColNote   = "note"
	ColPrice  = "price_override"
	ColAmount = "amount"
	ColName   = "name"
	ColFee    = "default_loss_fee"
)

// MatchHeaders, FundHeaders and MemberHeaders are the canonical header rows
// written back to the store.
var (
	MatchHeaders  = []string{ColDate, ColLosers, ColNote, ColPrice}
	FundHeaders   = []string{ColDate, ColNote, ColAmount}
	MemberHeaders = []string{ColName, ColFee}
)

// colIndex finds a header column, case-insensitively. -1 when absent;
// absent columns are synthesized with defaults during decode.
func colIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// cell returns the trimmed cell at idx, or "" when the column is absent or
// the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseAmount coerces a numeric cell, falling back to def on any parse
// failure. Malformed numbers are never a fatal error at this layer.
func parseAmount(s string, def core.Amount) core.Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return core.Amount(n)
}

// DecodeMatches normalizes raw match rows. Unparsable dates become the zero
// Date and stay in the result; period filters exclude them downstream.
func DecodeMatches(t Table) []core.MatchRecord {
	if len(t) < 2 {
		return nil
	}
	headers := t[0]
	dateIdx := colIndex(headers, ColDate)
	losersIdx := colIndex(headers, ColLosers)
	noteIdx := colIndex(headers, ColNote)
	priceIdx := colIndex(headers, ColPrice)

	recs := make([]core.MatchRecord, 0, len(t)-1)
	for _, row := range t[1:] {
		date, _ := core.ParseDate(cell(row, dateIdx))
		recs = append(recs, core.MatchRecord{
			Date:          date,
			Losers:        core.SplitNames(cell(row, losersIdx)),
			Note:          cell(row, noteIdx),
			PriceOverride: parseAmount(cell(row, priceIdx), core.NoOverride),
		})
	}
	return recs
}

// EncodeMatches renders match records in the canonical table shape.
func EncodeMatches(recs []core.MatchRecord) Table {
	t := Table{MatchHeaders}
	for _, r := range recs {
		t = append(t, []string{
			r.Date.String(),
			core.JoinNames(r.Losers),
			r.Note,
			strconv.FormatInt(int64(r.PriceOverride), 10),
		})
	}
	return t
}

// DecodeFunds normalizes raw fund rows; malformed amounts coerce to 0.
func DecodeFunds(t Table) []core.FundTransaction {
	if len(t) < 2 {
		return nil
	}
	headers := t[0]
	dateIdx := colIndex(headers, ColDate)
	noteIdx := colIndex(headers, ColNote)
	amountIdx := colIndex(headers, ColAmount)

	txs := make([]core.FundTransaction, 0, len(t)-1)
	for _, row := range t[1:] {
		date, _ := core.ParseDate(cell(row, dateIdx))
		txs = append(txs, core.FundTransaction{
			Date:   date,
			Note:   cell(row, noteIdx),
			Amount: parseAmount(cell(row, amountIdx), 0),
		})
	}
	return txs
}

// EncodeFunds renders fund transactions in the canonical table shape.
func EncodeFunds(txs []core.FundTransaction) Table {
	t := Table{FundHeaders}
	for _, tx := range txs {
		t = append(t, []string{
			tx.Date.String(),
			tx.Note,
			strconv.FormatInt(int64(tx.Amount), 10),
		})
	}
	return t
}

// DecodeMembers normalizes raw member rows. Rows with an empty name are
// dropped; malformed fees coerce to 0 (resolved to the walk-in fee later).
func DecodeMembers(t Table) []core.Member {
	if len(t) < 2 {
		return nil
	}
	headers := t[0]
	nameIdx := colIndex(headers, ColName)
	feeIdx := colIndex(headers, ColFee)

	members := make([]core.Member, 0, len(t)-1)
	for _, row := range t[1:] {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		members = append(members, core.Member{
			Name:           name,
			DefaultLossFee: parseAmount(cell(row, feeIdx), 0),
		})
	}
	return members
}

// EncodeMembers renders members in the canonical table shape.
func EncodeMembers(members []core.Member) Table {
	t := Table{MemberHeaders}
	for _, m := range members {
		t = append(t, []string{m.Name, strconv.FormatInt(int64(m.DefaultLossFee), 10)})
	}
	return t
}

// LoadMatches reads and normalizes the match table.
func LoadMatches(ctx context.Context, s TableStore) ([]core.MatchRecord, error) {
	t, err := s.LoadTable(ctx, TableMatches)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", TableMatches, err)
	}
	return DecodeMatches(t), nil
}

// SaveMatches overwrites the match table.
func SaveMatches(ctx context.Context, s TableStore, recs []core.MatchRecord) error {
	if err := s.SaveTable(ctx, TableMatches, EncodeMatches(recs)); err != nil {
		return fmt.Errorf("save %s: %w", TableMatches, err)
	}
	return nil
}

// AppendMatches appends records via read-modify-write, the only append
// primitive the store contract offers.
func AppendMatches(ctx context.Context, s TableStore, recs []core.MatchRecord) error {
	existing, err := LoadMatches(ctx, s)
	if err != nil {
		return err
	}
	return SaveMatches(ctx, s, append(existing, recs...))
}

// LoadFunds reads and normalizes the fund table.
func LoadFunds(ctx context.Context, s TableStore) ([]core.FundTransaction, error) {
	t, err := s.LoadTable(ctx, TableFunds)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", TableFunds, err)
	}
	return DecodeFunds(t), nil
}

// SaveFunds overwrites the fund table.
func SaveFunds(ctx context.Context, s TableStore, txs []core.FundTransaction) error {
	if err := s.SaveTable(ctx, TableFunds, EncodeFunds(txs)); err != nil {
		return fmt.Errorf("save %s: %w", TableFunds, err)
	}
	return nil
}

// LoadMembers reads and normalizes the member table.
func LoadMembers(ctx context.Context, s TableStore) ([]core.Member, error) {
	t, err := s.LoadTable(ctx, TableMembers)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", TableMembers, err)
	}
	return DecodeMembers(t), nil
}

// SaveMembers overwrites the member table.
func SaveMembers(ctx context.Context, s TableStore, members []core.Member) error {
	if err := s.SaveTable(ctx, TableMembers, EncodeMembers(members)); err != nil {
		return fmt.Errorf("save %s: %w", TableMembers, err)
	}
	return nil
}

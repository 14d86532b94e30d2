// Package google implements the TableStore port on top of the Google
// Sheets API, the system's real backing store. Each logical table lives in
// its own worksheet of a single spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"clubfund/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// worksheet title per logical table name
	worksheets map[string]string
}

var _ sheets.TableStore = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Worksheet titles default to the logical
// table names and can be overridden with MATCHES_SHEET_NAME,
// FUNDS_SHEET_NAME and MEMBERS_SHEET_NAME.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	worksheets := map[string]string{
		sheets.TableMatches: envOr("MATCHES_SHEET_NAME", sheets.TableMatches),
		sheets.TableFunds:   envOr("FUNDS_SHEET_NAME", sheets.TableFunds),
		sheets.TableMembers: envOr("MEMBERS_SHEET_NAME", sheets.TableMembers),
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheets:    worksheets,
	}, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// newSheetsService initializes a Sheets service using service account
// credentials from the environment.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inline != "":
		credentialsJSON = []byte(inline)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

func (c *Client) worksheet(name string) (string, error) {
	ws, ok := c.worksheets[name]
	if !ok {
		return "", fmt.Errorf("unknown table %q", name)
	}
	return ws, nil
}

// LoadTable reads the whole worksheet. A missing or empty worksheet loads
// as nil ("no data yet"); any API failure is returned as-is so callers can
// distinguish an outage from an empty table.
func (c *Client) LoadTable(ctx context.Context, name string) (sheets.Table, error) {
	ws, err := c.worksheet(name)
	if err != nil {
		return nil, err
	}
	rng := fmt.Sprintf("%s!A:Z", ws)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		if isMissingSheet(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	t := make(sheets.Table, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strings.TrimSpace(fmt.Sprint(v))
		}
		t[i] = cells
	}
	return t, nil
}

// SaveTable clears the worksheet and writes the table wholesale, creating
// the worksheet on first use. Last write wins across concurrent writers;
// that is the accepted store contract.
func (c *Client) SaveTable(ctx context.Context, name string, t sheets.Table) error {
	ws, err := c.worksheet(name)
	if err != nil {
		return err
	}
	if err := c.ensureWorksheet(ctx, ws); err != nil {
		return err
	}

	clearRng := fmt.Sprintf("%s!A:Z", ws)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", clearRng, err)
	}
	if len(t) == 0 {
		return nil
	}

	values := make([][]any, len(t))
	for i, row := range t {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, ws+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", ws, err)
	}
	slog.InfoContext(ctx, "Table saved to Google Sheets", "table", name, "worksheet", ws, "rows", len(t))
	return nil
}

// ensureWorksheet adds the worksheet when the spreadsheet does not have it
// yet, mirroring first-run behavior against a blank spreadsheet.
func (c *Client) ensureWorksheet(ctx context.Context, title string) error {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add worksheet %s: %w", title, err)
	}
	slog.InfoContext(ctx, "Created missing worksheet", "worksheet", title)
	return nil
}

// isMissingSheet detects the API error for a range referencing a worksheet
// that does not exist yet.
func isMissingSheet(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unable to parse range")
}

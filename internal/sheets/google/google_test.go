package google

import (
	"context"
	"os"
	"testing"
)

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatal("expected error without GOOGLE_SPREADSHEET_ID")
	}
}

func TestNewFromEnvRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestWorksheetNameOverrides(t *testing.T) {
	if got := envOr("CLUBFUND_TEST_UNSET_VAR", "fallback"); got != "fallback" {
		t.Fatalf("envOr default = %q", got)
	}
	os.Setenv("CLUBFUND_TEST_SET_VAR", " custom ")
	defer os.Unsetenv("CLUBFUND_TEST_SET_VAR")
	if got := envOr("CLUBFUND_TEST_SET_VAR", "fallback"); got != "custom" {
		t.Fatalf("envOr set = %q", got)
	}
}

func TestWorksheetLookup(t *testing.T) {
	c := &Client{worksheets: map[string]string{"matches": "matches"}}
	if _, err := c.worksheet("nope"); err == nil {
		t.Fatal("expected error for unknown table")
	}
	if ws, err := c.worksheet("matches"); err != nil || ws != "matches" {
		t.Fatalf("worksheet lookup failed: %q, %v", ws, err)
	}
}

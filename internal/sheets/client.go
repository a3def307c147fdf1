// Package sheets keeps the invoice ledger, error log and sender settings
// in one Google Spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/yamashin01/invoiceflow/internal/common"
)

// Tab names. These are part of the spreadsheet schema and shown to the
// user, so they stay in Japanese.
const (
	SettingsSheet = "設定"
	LedgerSheet   = "請求書一覧"
	ErrorLogSheet = "エラーログ"
)

// Client wraps the Sheets API for one spreadsheet.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewClient creates a spreadsheet client. spreadsheetID is required; the
// ledger is the system of record and there is no fallback.
func NewClient(ctx context.Context, httpClient *http.Client, spreadsheetID string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is not set", common.ErrConfigurationMissing)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &Client{service: service, spreadsheetID: spreadsheetID}, nil
}

// readAll returns every value row of the named tab, or rangeMissing=true
// when the tab does not exist.
func (c *Client) readAll(ctx context.Context, sheet string) (rows [][]any, rangeMissing bool, err error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		if isMissingRange(err) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return resp.Values, false, nil
}

// appendRow appends one row of values to the named tab.
func (c *Client) appendRow(ctx context.Context, sheet string, values []any) error {
	body := &sheets.ValueRange{Values: [][]any{values}}
	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, sheet, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		if isMissingRange(err) {
			return fmt.Errorf("%w: %s", common.ErrSheetMissing, sheet)
		}
		return fmt.Errorf("failed to append to sheet %s: %w", sheet, err)
	}
	return nil
}

// isMissingRange detects the "Unable to parse range" API error the Sheets
// API returns when the referenced tab does not exist. Other bad-request
// errors (malformed payloads and the like) must not read as a missing tab.
func isMissingRange(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusBadRequest &&
			strings.Contains(apiErr.Message, "Unable to parse range")
	}
	return false
}

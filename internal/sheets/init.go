package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/sheets/v4"
)

var sheetHeaders = map[string][]any{
	SettingsSheet: {"送信元メールアドレス", "会社名", "検索キーワード", "通貨", "有効"},
	LedgerSheet: {
		"Message ID", "受信日", "請求元", "通貨", "金額（原通貨）", "為替レート",
		"金額（自動・円）", "金額（確定）", "ステータス", "PDFリンク", "処理日時",
	},
	ErrorLogSheet: {"発生日時", "処理対象", "エラー内容", "対応状況"},
}

// Initialize creates any of the settings, ledger and error-log tabs that
// do not exist yet, writes their header rows, and hides the ledger's
// message-ID column. Existing tabs are left untouched, so Initialize is
// safe to run repeatedly.
func (c *Client) Initialize(ctx context.Context) error {
	spreadsheet, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to access spreadsheet %s: %w", c.spreadsheetID, err)
	}

	existing := make(map[string]bool)
	for _, sheet := range spreadsheet.Sheets {
		existing[sheet.Properties.Title] = true
	}

	for _, title := range []string{SettingsSheet, LedgerSheet, ErrorLogSheet} {
		if existing[title] {
			slog.Info("Sheet already exists", "sheet", title)
			continue
		}
		if err := c.createSheet(ctx, title); err != nil {
			return err
		}
		slog.Info("Created sheet", "sheet", title)
	}

	return nil
}

func (c *Client) createSheet(ctx context.Context, title string) error {
	addReq := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			}},
		},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, addReq).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", title, err)
	}

	header := &sheets.ValueRange{Values: [][]any{sheetHeaders[title]}}
	_, err = c.service.Spreadsheets.Values.
		Update(c.spreadsheetID, title+"!A1", header).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write header for sheet %s: %w", title, err)
	}

	sheetID := resp.Replies[0].AddSheet.Properties.SheetId
	requests := []*sheets.Request{
		{RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:       sheetID,
				StartRowIndex: 0,
				EndRowIndex:   1,
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat: &sheets.TextFormat{Bold: true},
				},
			},
			Fields: "userEnteredFormat.textFormat.bold",
		}},
	}

	// The message-ID column is bookkeeping, not for the reviewer.
	if title == LedgerSheet {
		requests = append(requests, &sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   1,
				},
				Properties: &sheets.DimensionProperties{HiddenByUser: true},
				Fields:     "hiddenByUser",
			},
		})
	}

	formatReq := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	if _, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, formatReq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to format sheet %s: %w", title, err)
	}

	return nil
}

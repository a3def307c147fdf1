package sheets

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/yamashin01/invoiceflow/internal/model"
)

// Ledger tab columns.
const (
	ledgerColMessageID = iota
	ledgerColReceivedDate
	ledgerColCompany
	ledgerColCurrency
	ledgerColOriginalAmount
	ledgerColExchangeRate
	ledgerColConvertedYen
	ledgerColFinalAmount
	ledgerColStatus
	ledgerColPDFLink
	ledgerColProcessedAt
)

const (
	dateDisplayFormat     = "2006/01/02"
	dateTimeDisplayFormat = "2006/01/02 15:04"
)

// ListMessageIDs returns the message identifiers of every existing ledger
// row. A spreadsheet without a ledger tab yields an empty set; the first
// run happens before anything has been recorded.
func (c *Client) ListMessageIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, missing, err := c.readAll(ctx, LedgerSheet)
	if err != nil {
		return nil, err
	}
	if missing {
		slog.Info("Ledger sheet not found, treating as first run")
		return map[string]struct{}{}, nil
	}

	ids := make(map[string]struct{})
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if id := cellString(row, ledgerColMessageID); id != "" {
			ids[id] = struct{}{}
		}
	}

	slog.Info("Loaded processed message IDs", "count", len(ids))
	return ids, nil
}

// Append adds one ledger row. Append-only: nothing in the pipeline ever
// updates or deletes rows.
func (c *Client) Append(ctx context.Context, row model.LedgerRow) error {
	if err := c.appendRow(ctx, LedgerSheet, ledgerRowValues(row)); err != nil {
		return err
	}
	slog.Info("Appended ledger row", "company", row.Company, "received", row.ReceivedDate.Format(dateDisplayFormat))
	return nil
}

// ledgerRowValues maps a LedgerRow onto the ledger column layout. Nil
// numeric fields render as blank cells, not zeros.
func ledgerRowValues(row model.LedgerRow) []any {
	return []any{
		row.MessageID,
		row.ReceivedDate.Format(dateDisplayFormat),
		row.Company,
		row.Currency,
		amountCell(row.OriginalAmount),
		rateCell(row.ExchangeRate),
		amountCell(row.ConvertedYen),
		row.FinalAmount,
		string(row.Status),
		row.PDFLink,
		row.ProcessedAt.Format(dateTimeDisplayFormat),
	}
}

func amountCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func rateCell(v *float64) any {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ErrorLog appends to the error-log tab, degrading to a log line when the
// tab is missing so a broken error sink can never mask the ingestion
// result itself.
type ErrorLog struct {
	client *Client
}

// NewErrorLog creates an error recorder backed by the error-log tab.
func NewErrorLog(client *Client) *ErrorLog {
	return &ErrorLog{client: client}
}

// Append records one error entry. Never returns an error.
func (e *ErrorLog) Append(ctx context.Context, entry model.ErrorEntry) {
	resolution := entry.Resolution
	if resolution == "" {
		resolution = model.ResolutionUnresolved
	}

	values := []any{
		entry.OccurredAt.Format(dateTimeDisplayFormat),
		entry.Target,
		entry.Message,
		resolution,
	}

	if err := e.client.appendRow(ctx, ErrorLogSheet, values); err != nil {
		slog.Warn("Failed to record error entry, continuing",
			"target", entry.Target,
			"message", entry.Message,
			"error", err)
		return
	}

	slog.Error("Recorded error entry", "target", entry.Target, "message", entry.Message)
}

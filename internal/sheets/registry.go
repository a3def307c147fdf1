package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yamashin01/invoiceflow/internal/common"
	"github.com/yamashin01/invoiceflow/internal/model"
)

// Settings tab columns.
const (
	settingsColEmail = iota
	settingsColCompany
	settingsColKeyword
	settingsColCurrency
	settingsColEnabled
)

// EnabledSenders reads the settings tab and returns the active sender
// filters in row order. Rows missing an address or company name are
// dropped. A spreadsheet without a settings tab is a configuration error
// that aborts the run.
func (c *Client) EnabledSenders(ctx context.Context) ([]model.SenderFilter, error) {
	rows, missing, err := c.readAll(ctx, SettingsSheet)
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, fmt.Errorf("%w: sheet %q not found", common.ErrConfigurationMissing, SettingsSheet)
	}

	senders := sendersFromRows(rows)
	slog.Info("Loaded enabled senders", "count", len(senders))
	return senders, nil
}

// sendersFromRows parses raw sheet values, skipping the header row.
// Legacy four-column rows (no currency column) put the enabled flag in the
// currency position; both layouts are accepted as one schema with an
// optional currency.
func sendersFromRows(rows [][]any) []model.SenderFilter {
	var senders []model.SenderFilter
	for i, row := range rows {
		if i == 0 {
			continue
		}

		filter := model.SenderFilter{
			Email:   cellString(row, settingsColEmail),
			Company: cellString(row, settingsColCompany),
			Keyword: cellString(row, settingsColKeyword),
		}

		if len(row) > settingsColEnabled {
			filter.Currency = cellString(row, settingsColCurrency)
			filter.Enabled = cellBool(row, settingsColEnabled)
		} else {
			filter.Enabled = cellBool(row, settingsColCurrency)
		}

		if !filter.Enabled || filter.Email == "" || filter.Company == "" {
			continue
		}
		senders = append(senders, filter)
	}
	return senders
}

func cellString(row []any, col int) string {
	if col >= len(row) {
		return ""
	}
	if s, ok := row[col].(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[col]))
}

func cellBool(row []any, col int) bool {
	if col >= len(row) {
		return false
	}
	switch v := row[col].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "TRUE")
	default:
		return false
	}
}

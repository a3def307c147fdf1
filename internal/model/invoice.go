// Package model defines the core domain types for invoice ingestion.
package model

import "time"

// LedgerStatus represents the review state of a ledger row.
type LedgerStatus string

// Ledger row statuses. Rendered verbatim into the spreadsheet, so the
// Japanese labels are part of the schema.
const (
	StatusCompleted   LedgerStatus = "完了"
	StatusNeedsReview LedgerStatus = "要確認"
	StatusError       LedgerStatus = "エラー"
)

// LedgerRow is a single record in the invoice ledger. One row is created
// per successfully ingested message; MessageID is the unique key. Only
// FinalAmount is ever edited after creation, and only by a human reviewer.
type LedgerRow struct {
	ReceivedDate   time.Time
	ProcessedAt    time.Time
	MessageID      string
	Company        string
	Currency       string
	Status         LedgerStatus
	PDFLink        string
	FinalAmount    string
	OriginalAmount *float64
	ExchangeRate   *float64
	ConvertedYen   *float64
}

// ErrorEntry is a single record in the error log. Append-only.
type ErrorEntry struct {
	OccurredAt time.Time
	Target     string
	Message    string
	Resolution string
}

// ResolutionUnresolved is the initial resolution state of every error entry.
const ResolutionUnresolved = "未対応"

// RunResult aggregates the outcome of one pipeline invocation.
type RunResult struct {
	Window       DateRange
	Errors       []ErrorEntry
	SuccessCount int
	SkippedCount int
	ErrorCount   int
	HasErrors    bool
}

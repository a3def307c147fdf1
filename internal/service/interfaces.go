// Package service defines the interfaces for all external collaborators.
package service

import (
	"context"

	"github.com/yamashin01/invoiceflow/internal/model"
)

// Mailbox is the mailbox search contract consumed by the pipeline. Search
// returns lightweight candidates (headers only) for one sender filter
// within an inclusive date window; Attachments fetches one message's
// attachment bytes on demand, so duplicates are never downloaded and a
// failed fetch stays scoped to its message.
type Mailbox interface {
	Search(ctx context.Context, sender model.SenderFilter, window model.DateRange) ([]model.CandidateMessage, error)
	Attachments(ctx context.Context, messageID string) ([]model.Attachment, error)
}

// Archive stores a PDF durably and returns a link to it.
type Archive interface {
	Store(ctx context.Context, data []byte, filename string) (string, error)
}

// Ledger is the append-only invoice ledger.
type Ledger interface {
	// ListMessageIDs returns the identifiers of every message already
	// recorded, for dedup bootstrap. A ledger that does not exist yet
	// yields an empty set, not an error.
	ListMessageIDs(ctx context.Context) (map[string]struct{}, error)
	Append(ctx context.Context, row model.LedgerRow) error
}

// ErrorLog is the append-only error sink. Implementations must degrade
// gracefully when the sink is missing: log, don't fail the ingestion.
type ErrorLog interface {
	Append(ctx context.Context, entry model.ErrorEntry)
}

// SenderSource resolves the configured sender filters.
type SenderSource interface {
	EnabledSenders(ctx context.Context) ([]model.SenderFilter, error)
}

// AmountExtractor infers the invoice amount from PDF bytes. The result is
// always well-formed; failures surface as confidence tiers, never errors.
type AmountExtractor interface {
	Extract(ctx context.Context, pdf []byte) model.ExtractionResult
}

// RateSource provides a live base-currency exchange rate quote.
type RateSource interface {
	USDJPYRate(ctx context.Context) (float64, error)
}

// Notifier delivers the run summary to its configured recipient.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

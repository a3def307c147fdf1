// Package engine implements the invoice ingestion pipeline.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yamashin01/invoiceflow/internal/common"
	"github.com/yamashin01/invoiceflow/internal/currency"
	"github.com/yamashin01/invoiceflow/internal/drive"
	"github.com/yamashin01/invoiceflow/internal/model"
	"github.com/yamashin01/invoiceflow/internal/service"
)

// Engine orchestrates one ingestion run: for every enabled sender it finds
// candidate messages in the window, skips duplicates, archives the PDF,
// extracts and converts the amount, and appends a ledger row. Failures are
// isolated per message and per sender; the run itself only fails before
// the loop starts.
//
// An Engine is built for a single run. The converter's exchange-rate cache
// and the dedup set are run-scoped state and must not be reused.
type Engine struct {
	mailbox   service.Mailbox
	archive   service.Archive
	ledger    service.Ledger
	errorLog  service.ErrorLog
	senders   service.SenderSource
	extractor service.AmountExtractor
	converter *currency.Converter
	config    Config
}

// Config holds engine options.
type Config struct {
	// CurrencyAware enables the currency columns and conversion-gated
	// status assignment. Off, the ledger keeps only the extracted yen
	// amount and status is gated on extraction confidence alone.
	CurrencyAware bool
	// OnMessage, when set, is invoked once per candidate message after it
	// has been handled (ingested, skipped or failed). Drives the CLI
	// progress display.
	OnMessage func(model.CandidateMessage)
}

// New creates an engine for one run.
func New(mailbox service.Mailbox, archive service.Archive, ledger service.Ledger, errorLog service.ErrorLog, senders service.SenderSource, extractor service.AmountExtractor, converter *currency.Converter, config Config) *Engine {
	return &Engine{
		mailbox:   mailbox,
		archive:   archive,
		ledger:    ledger,
		errorLog:  errorLog,
		senders:   senders,
		extractor: extractor,
		converter: converter,
		config:    config,
	}
}

// Run processes every enabled sender's invoices within the window and
// returns the aggregated result. It returns an error only for failures
// before the sender loop starts (missing configuration, unreadable
// ledger); everything after that is recorded and counted instead.
func (e *Engine) Run(ctx context.Context, window model.DateRange) (model.RunResult, error) {
	slog.Info("Starting invoice ingestion", "window", window.Display())

	senders, err := e.senders.EnabledSenders(ctx)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("failed to load senders: %w", err)
	}

	processedIDs, err := e.ledger.ListMessageIDs(ctx)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("failed to load processed message ids: %w", err)
	}

	result := model.RunResult{Window: window}

	for _, sender := range senders {
		slog.Info("Processing sender", "company", sender.Company, "email", sender.Email)

		messages, err := e.mailbox.Search(ctx, sender, window)
		if err != nil {
			// One bad sender must not abort the run.
			slog.Error("Sender search failed", "company", sender.Company, "error", err)
			e.recordError(ctx, &result, fmt.Sprintf("%s (%s)", sender.Company, sender.Email), err)
			continue
		}

		for _, msg := range messages {
			e.handleMessage(ctx, &result, sender, msg, processedIDs)
			if e.config.OnMessage != nil {
				e.config.OnMessage(msg)
			}
		}
	}

	result.HasErrors = result.ErrorCount > 0
	slog.Info("Ingestion finished",
		"success", result.SuccessCount,
		"skipped", result.SkippedCount,
		"errors", result.ErrorCount)

	return result, nil
}

func (e *Engine) handleMessage(ctx context.Context, result *model.RunResult, sender model.SenderFilter, msg model.CandidateMessage, processedIDs map[string]struct{}) {
	if _, seen := processedIDs[msg.ID]; seen {
		slog.Info("Skipping processed message", "subject", msg.Subject)
		result.SkippedCount++
		return
	}

	if err := e.ingest(ctx, sender, msg); err != nil {
		slog.Error("Message ingestion failed", "subject", msg.Subject, "error", err)
		target := fmt.Sprintf("%s / %s / %s", sender.Email, msg.Received.Format("2006/01/02"), msg.Subject)
		e.recordError(ctx, result, target, err)
		return
	}

	// Extend the in-run dedup set immediately so a second copy of the
	// same message later in this run is skipped too.
	processedIDs[msg.ID] = struct{}{}
	result.SuccessCount++
}

// ingest performs the per-message pipeline: attachment retrieval and
// selection, amount extraction, currency conversion, archive upload,
// ledger append.
func (e *Engine) ingest(ctx context.Context, sender model.SenderFilter, msg model.CandidateMessage) error {
	attachments, err := e.mailbox.Attachments(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch attachments: %w", err)
	}
	msg.Attachments = attachments

	pdfs := msg.PDFAttachments()
	if len(pdfs) == 0 {
		return common.ErrNoAttachment
	}
	if len(pdfs) > 1 {
		slog.Warn("Multiple PDF attachments, processing only the first",
			"count", len(pdfs),
			"subject", msg.Subject)
	}
	pdf := pdfs[0]

	extraction := e.extractor.Extract(ctx, pdf.Data)

	row := model.LedgerRow{
		MessageID:    msg.ID,
		ReceivedDate: msg.Received,
		Company:      sender.Company,
		ProcessedAt:  time.Now(),
	}

	var yenAmount *float64
	statusClean := extraction.Confidence == model.ConfidenceHigh

	if e.config.CurrencyAware {
		conv := e.converter.Convert(ctx, extraction.Amount, sender.Currency)
		row.Currency = displayCurrency(sender.Currency)
		row.OriginalAmount = extraction.Amount
		row.ExchangeRate = conv.Rate
		row.ConvertedYen = conv.AmountYen
		yenAmount = conv.AmountYen
		if conv.Degraded || conv.Unrecognized {
			statusClean = false
		}
	} else {
		row.ConvertedYen = extraction.Amount
		yenAmount = extraction.Amount
	}

	if statusClean {
		row.Status = model.StatusCompleted
	} else {
		row.Status = model.StatusNeedsReview
	}

	filename := drive.InvoiceFilename(msg.Received, sender.Company, yenAmount)
	link, err := e.archive.Store(ctx, pdf.Data, filename)
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", filename, err)
	}
	row.PDFLink = link

	if err := e.ledger.Append(ctx, row); err != nil {
		return fmt.Errorf("failed to append ledger row: %w", err)
	}

	slog.Info("Ingested invoice",
		"filename", filename,
		"status", row.Status,
		"confidence", extraction.Confidence)

	return nil
}

func (e *Engine) recordError(ctx context.Context, result *model.RunResult, target string, err error) {
	entry := model.ErrorEntry{
		OccurredAt: time.Now(),
		Target:     target,
		Message:    err.Error(),
		Resolution: model.ResolutionUnresolved,
	}
	e.errorLog.Append(ctx, entry)
	result.Errors = append(result.Errors, entry)
	result.ErrorCount++
}

// displayCurrency fills the ledger currency column; a sender with no
// configured currency bills in yen.
func displayCurrency(code string) string {
	if code == "" {
		return "JPY"
	}
	return code
}

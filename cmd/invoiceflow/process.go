package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yamashin01/invoiceflow/internal/cli"
	"github.com/yamashin01/invoiceflow/internal/common"
	"github.com/yamashin01/invoiceflow/internal/config"
	"github.com/yamashin01/invoiceflow/internal/currency"
	"github.com/yamashin01/invoiceflow/internal/drive"
	"github.com/yamashin01/invoiceflow/internal/engine"
	"github.com/yamashin01/invoiceflow/internal/gemini"
	"github.com/yamashin01/invoiceflow/internal/mailbox"
	"github.com/yamashin01/invoiceflow/internal/model"
	"github.com/yamashin01/invoiceflow/internal/notify"
	"github.com/yamashin01/invoiceflow/internal/sheets"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process last month's invoice emails",
		Long: `Collect invoice emails from every enabled sender, archive the PDF
attachments, extract amounts, and append new rows to the ledger.

By default the previous calendar month is processed, which suits a run
scheduled early each month. Use --month to reprocess a specific month.

Examples:
  invoiceflow process                  # Process the previous month
  invoiceflow process --month 2024-03  # Process March 2024`,
		RunE: runProcess,
	}

	cmd.Flags().StringP("month", "m", "", "Specific month to process (format: 2024-01)")
	cmd.Flags().Bool("no-notify", false, "Skip the summary notification email")

	_ = viper.BindPFlag("process.month", cmd.Flags().Lookup("month"))
	_ = viper.BindPFlag("process.no_notify", cmd.Flags().Lookup("no-notify"))

	return cmd
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	window, err := processWindow(viper.GetString("process.month"))
	if err != nil {
		return err
	}
	slog.Info("Starting invoice processing", "window", window.Display())

	authCfg, err := config.LoadGoogleAuth()
	if err != nil {
		return common.NewUserError("Google credentials are not configured (set google.* in the config file or GOOGLE_* environment variables)", err)
	}
	httpClient, err := googleHTTPClient(ctx, authCfg)
	if err != nil {
		return err
	}

	notifier, err := notify.NewNotifier(ctx, httpClient, config.NotificationEmail())
	if err != nil {
		return fmt.Errorf("failed to create notifier: %w", err)
	}

	eng, err := buildEngine(ctx, httpClient)
	if err != nil {
		return err
	}

	result, err := eng.Run(ctx, window)
	if err != nil {
		// Best effort: tell the recipient the run died before a summary
		// existed, then surface the original failure.
		if notifyEnabled() {
			failure := notify.ComposeFailure(err, time.Now())
			if sendErr := notifier.Send(ctx, failure.Subject, failure.Body); sendErr != nil {
				slog.Error("Failed to send failure notification", "error", sendErr)
			}
		}
		return fmt.Errorf("invoice processing failed: %w", err)
	}

	fmt.Fprintln(os.Stdout, cli.RenderRunSummary(result))

	if notifyEnabled() {
		summary := notify.ComposeSummary(result, time.Now())
		if sendErr := notifier.Send(ctx, summary.Subject, summary.Body); sendErr != nil {
			slog.Warn("Failed to send summary notification", "error", sendErr)
		}
	}

	return nil
}

// notifyEnabled gates both the summary and the failure notification on the
// same --no-notify setting.
func notifyEnabled() bool {
	return !viper.GetBool("process.no_notify")
}

// processWindow resolves the date window: an explicit --month value, or the
// previous calendar month.
func processWindow(month string) (model.DateRange, error) {
	if month == "" {
		return model.PreviousMonth(time.Now()), nil
	}
	parsed, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("invalid month format (use YYYY-MM): %w", err)
	}
	return model.Month(parsed.Year(), parsed.Month(), time.Local), nil
}

// buildEngine wires every collaborator for a single processing run.
func buildEngine(ctx context.Context, httpClient *http.Client) (*engine.Engine, error) {
	sheetsClient, err := sheets.NewClient(ctx, httpClient, config.SpreadsheetID())
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	mailClient, err := mailbox.NewClient(ctx, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	archive, err := drive.NewArchive(ctx, httpClient, config.DriveFolderID())
	if err != nil {
		return nil, fmt.Errorf("failed to create drive archive: %w", err)
	}

	extractor := gemini.NewExtractor(config.LoadGemini())
	if !extractor.Enabled() {
		slog.Warn("Gemini API key not configured, amounts will need manual entry")
	}

	converter := currency.NewConverter(currency.NewQuoteClient(config.QuoteURL()))

	bar := newProcessBar()
	cfg := engine.Config{
		CurrencyAware: config.CurrencyAware(),
		OnMessage:     func(model.CandidateMessage) { _ = bar.Add(1) },
	}

	return engine.New(
		mailClient,
		archive,
		sheetsClient,
		sheets.NewErrorLog(sheetsClient),
		sheetsClient,
		extractor,
		converter,
		cfg,
	), nil
}

// newProcessBar builds an indeterminate progress indicator; the total
// message count is unknown until every sender has been searched.
func newProcessBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan][bold]Processing invoices...[reset]"),
		progressbar.OptionSpinnerType(14),
	)
}

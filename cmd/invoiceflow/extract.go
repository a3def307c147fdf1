package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yamashin01/invoiceflow/internal/cli"
	"github.com/yamashin01/invoiceflow/internal/config"
	"github.com/yamashin01/invoiceflow/internal/gemini"
)

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <pdf-file>",
		Short: "Extract the amount from a local invoice PDF",
		Long: `Run the Gemini amount extraction against a PDF on disk and print the
result. Useful for checking the API key and judging extraction quality on
a vendor's invoice format before enabling them in the settings sheet.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	extractor := gemini.NewExtractor(config.LoadGemini())
	if !extractor.Enabled() {
		return fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	data, err := os.ReadFile(config.ExpandPath(args[0]))
	if err != nil {
		return fmt.Errorf("failed to read PDF: %w", err)
	}

	result := extractor.Extract(ctx, data)

	amount := "不明"
	if result.Amount != nil {
		amount = strconv.FormatFloat(*result.Amount, 'f', -1, 64) + "円"
	}
	fmt.Fprintln(os.Stdout, cli.FormatTitle("金額抽出結果"))
	fmt.Fprintf(os.Stdout, "金額: %s\n", amount)
	fmt.Fprintf(os.Stdout, "信頼度: %s\n", result.Confidence)
	if result.Note != "" {
		fmt.Fprintf(os.Stdout, "備考: %s\n", result.Note)
	}
	return nil
}

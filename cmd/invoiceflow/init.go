package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yamashin01/invoiceflow/internal/cli"
	"github.com/yamashin01/invoiceflow/internal/common"
	"github.com/yamashin01/invoiceflow/internal/config"
	"github.com/yamashin01/invoiceflow/internal/sheets"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the spreadsheet tabs",
		Long: `Create the settings, ledger, and error log tabs in the configured
spreadsheet, with headers and formatting. Existing tabs are left alone, so
this is safe to rerun.

After initialization, fill in the settings tab with one row per sender
before running 'invoiceflow process'.`,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	authCfg, err := config.LoadGoogleAuth()
	if err != nil {
		return common.NewUserError("Google credentials are not configured (set google.* in the config file or GOOGLE_* environment variables)", err)
	}
	httpClient, err := googleHTTPClient(ctx, authCfg)
	if err != nil {
		return err
	}

	client, err := sheets.NewClient(ctx, httpClient, config.SpreadsheetID())
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	if err := client.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize spreadsheet: %w", err)
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess("スプレッドシートを初期化しました"))
	fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render("「設定」シートに送信元情報を入力してから process を実行してください"))
	return nil
}

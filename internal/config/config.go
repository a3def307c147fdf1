// Package config provides configuration loading for the application.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/yamashin01/invoiceflow/internal/gemini"
	"github.com/yamashin01/invoiceflow/internal/googleauth"
)

// LoadGoogleAuth loads Google API credentials from Viper and environment
// variables. Precedence:
// 1. Viper configuration (from config file or INVOICEFLOW_ env vars)
// 2. Direct environment variables (GOOGLE_*)
func LoadGoogleAuth() (googleauth.Config, error) {
	var cfg googleauth.Config

	cfg.ServiceAccountPath = ExpandPath(viper.GetString("google.service_account_path"))
	cfg.ClientID = viper.GetString("google.client_id")
	cfg.ClientSecret = viper.GetString("google.client_secret")
	cfg.RefreshToken = viper.GetString("google.refresh_token")

	if cfg.ServiceAccountPath == "" {
		cfg.ServiceAccountPath = ExpandPath(os.Getenv("GOOGLE_SERVICE_ACCOUNT_PATH"))
	}
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if cfg.RefreshToken == "" {
		cfg.RefreshToken = os.Getenv("GOOGLE_REFRESH_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return googleauth.Config{}, err
	}
	return cfg, nil
}

// LoadGemini loads the extraction model configuration. An empty API key is
// valid: extraction then runs in skip mode and every row lands as 要確認.
func LoadGemini() gemini.Config {
	cfg := gemini.Config{
		APIKey: viper.GetString("gemini.api_key"),
		Model:  viper.GetString("gemini.model"),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = gemini.DefaultModel
	}
	return cfg
}

// SpreadsheetID returns the ledger spreadsheet identifier.
func SpreadsheetID() string {
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		return v
	}
	return os.Getenv("INVOICE_SPREADSHEET_ID")
}

// DriveFolderID returns the archive folder identifier.
func DriveFolderID() string {
	if v := viper.GetString("drive.folder_id"); v != "" {
		return v
	}
	return os.Getenv("INVOICE_DRIVE_FOLDER_ID")
}

// NotificationEmail returns the summary recipient, empty when notifications
// are disabled.
func NotificationEmail() string {
	if v := viper.GetString("notify.email"); v != "" {
		return v
	}
	return os.Getenv("NOTIFICATION_EMAIL")
}

// QuoteURL returns the exchange rate endpoint override, empty for the
// built-in default.
func QuoteURL() string {
	return viper.GetString("currency.quote_url")
}

// CurrencyAware reports whether multi-currency columns and USD conversion
// are enabled. Defaults to true.
func CurrencyAware() bool {
	if viper.IsSet("currency.enabled") {
		return viper.GetBool("currency.enabled")
	}
	return true
}

// Package currency converts invoice amounts to yen using a run-scoped
// cached exchange rate.
package currency

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/yamashin01/invoiceflow/internal/service"
)

// FallbackRate is used when the live quote cannot be fetched. Conversions
// made with it are marked degraded so the pipeline routes them to review.
const FallbackRate = 150.0

// Conversion is the result of converting one amount to yen. A nil Rate
// means no conversion was applied (already yen, nil amount, or an
// unrecognized currency passed through).
type Conversion struct {
	AmountYen    *float64
	Rate         *float64
	Degraded     bool
	Unrecognized bool
}

// Converter holds the per-run exchange-rate cache. Construct a fresh
// Converter for every pipeline run; the cached rate must not outlive it.
type Converter struct {
	source   service.RateSource
	rate     float64
	fetched  bool
	degraded bool
}

// NewConverter creates a converter with an empty rate cache.
func NewConverter(source service.RateSource) *Converter {
	return &Converter{source: source}
}

// Convert converts amount in the given currency to yen. A nil amount
// converts to nil. Currency codes are matched case-insensitively after
// trimming; yen aliases pass through unchanged and unrecognized codes pass
// through with the Unrecognized flag set.
func (c *Converter) Convert(ctx context.Context, amount *float64, code string) Conversion {
	if amount == nil {
		return Conversion{}
	}

	switch normalizeCurrency(code) {
	case "JPY":
		return Conversion{AmountYen: amount}
	case "USD":
		rate, degraded := c.cachedRate(ctx)
		converted := math.Round(*amount * rate)
		slog.Info("Converted amount to yen",
			"amount_usd", *amount,
			"rate", rate,
			"amount_jpy", converted)
		return Conversion{AmountYen: &converted, Rate: &rate, Degraded: degraded}
	default:
		slog.Warn("Unrecognized currency, passing amount through", "currency", code)
		return Conversion{AmountYen: amount, Unrecognized: true}
	}
}

// cachedRate returns the USD/JPY rate for this run, fetching it at most
// once. Any fetch failure falls back to FallbackRate and marks every
// conversion in the run as degraded.
func (c *Converter) cachedRate(ctx context.Context) (float64, bool) {
	if c.fetched {
		return c.rate, c.degraded
	}

	rate, err := c.source.USDJPYRate(ctx)
	switch {
	case err != nil:
		slog.Error("Exchange rate fetch failed, using fallback", "error", err, "fallback", FallbackRate)
		rate = FallbackRate
		c.degraded = true
	case rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0):
		slog.Error("Exchange rate quote invalid, using fallback", "rate", rate, "fallback", FallbackRate)
		rate = FallbackRate
		c.degraded = true
	default:
		slog.Info("Fetched USD/JPY rate", "rate", rate)
	}

	c.rate = rate
	c.fetched = true
	return c.rate, c.degraded
}

// normalizeCurrency maps currency spellings onto canonical codes. The
// settings sheet is hand-edited, so symbols and Japanese names are
// accepted alongside ISO codes.
func normalizeCurrency(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "", "JPY", "円":
		return "JPY"
	case "USD", "$", "ドル":
		return "USD"
	default:
		return strings.ToUpper(strings.TrimSpace(code))
	}
}

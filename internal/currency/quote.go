package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultQuoteURL serves the USD/JPY reference rate used when no custom
// quote endpoint is configured.
const DefaultQuoteURL = "https://api.frankfurter.dev/v1/latest?base=USD&symbols=JPY"

// QuoteClient fetches the USD/JPY rate from an HTTP quote endpoint.
type QuoteClient struct {
	httpClient *http.Client
	url        string
}

// NewQuoteClient creates a quote client for the given endpoint. An empty
// url selects DefaultQuoteURL.
func NewQuoteClient(url string) *QuoteClient {
	if url == "" {
		url = DefaultQuoteURL
	}
	return &QuoteClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// USDJPYRate fetches one live quote. Called at most once per run; the
// converter caches the result.
func (q *QuoteClient) USDJPYRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := q.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read quote response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote endpoint error (status %d): %s", resp.StatusCode, string(body))
	}

	return parseQuote(body)
}

// parseQuote accepts both the frankfurter response shape and a flat
// {"rate": n} object.
func parseQuote(body []byte) (float64, error) {
	var quote struct {
		Rates map[string]float64 `json:"rates"`
		Rate  float64            `json:"rate"`
	}
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, fmt.Errorf("failed to parse quote response: %w", err)
	}

	rate := quote.Rate
	if jpy, ok := quote.Rates["JPY"]; ok {
		rate = jpy
	}
	if rate <= 0 {
		return 0, fmt.Errorf("quote response contained no positive JPY rate")
	}

	return rate, nil
}

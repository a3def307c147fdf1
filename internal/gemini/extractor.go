// Package gemini extracts invoice amounts from PDFs via the Gemini API.
package gemini

import (
	"context"
	"log/slog"
	"sync"

	"google.golang.org/genai"

	"github.com/yamashin01/invoiceflow/internal/model"
)

// DefaultModel is the inference model used when none is configured.
const DefaultModel = "gemini-2.5-flash-lite"

const extractionPrompt = `この請求書PDFから請求金額（税込合計）を抽出してください。

以下のJSON形式のみで回答してください。他の文章は不要です。
{
  "amount": 数値（円単位、カンマなし）,
  "confidence": "high" または "medium" または "low",
  "note": "抽出した金額の説明（例：税込合計、請求金額など）"
}

注意事項：
- 税込の合計金額を優先してください
- 金額が見つからない場合は amount を null にしてください
- 複数の金額がある場合は、請求合計・税込合計を選んでください`

// Config holds the extractor settings.
type Config struct {
	APIKey string
	Model  string
}

// Extractor implements service.AmountExtractor against the Gemini API.
// With no API key configured it degrades to a no-op that reports every
// extraction as skipped; this is an expected mode, not a failure.
type Extractor struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewExtractor creates an amount extractor.
func NewExtractor(cfg Config) *Extractor {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{apiKey: cfg.APIKey, model: model}
}

// Enabled reports whether extraction will actually call the API.
func (e *Extractor) Enabled() bool {
	return e.apiKey != ""
}

// Extract sends one inference request with the PDF attached and parses the
// amount out of the response. It never returns an error: transport and API
// failures come back as a result with an error confidence tier, so one bad
// extraction can only downgrade a ledger row, never abort a run.
func (e *Extractor) Extract(ctx context.Context, pdf []byte) model.ExtractionResult {
	if e.apiKey == "" {
		slog.Warn("Gemini API key not configured, skipping amount extraction")
		return model.ExtractionResult{Confidence: model.ConfidenceSkipped}
	}

	client, err := e.geminiClient(ctx)
	if err != nil {
		slog.Error("Failed to create Gemini client", "error", err)
		return model.ExtractionResult{Confidence: model.ConfidenceError, Note: err.Error()}
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",
						Data:     pdf,
					},
				},
				{Text: extractionPrompt},
			},
		},
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: 256,
	}

	resp, err := client.Models.GenerateContent(ctx, e.model, contents, genCfg)
	if err != nil {
		slog.Error("Gemini request failed", "error", err)
		return model.ExtractionResult{Confidence: model.ConfidenceError, Note: err.Error()}
	}

	text := resp.Text()
	slog.Debug("Gemini response", "text", text)

	result := parseResponse(text)
	slog.Info("Amount extraction finished",
		"amount", result.Amount,
		"confidence", result.Confidence,
		"note", result.Note)

	return result
}

// geminiClient builds the API client on first use and reuses it for every
// message in the run.
func (e *Extractor) geminiClient(ctx context.Context) (*genai.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return e.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      e.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1beta"},
	})
	if err != nil {
		return nil, err
	}

	e.client = client
	return client, nil
}

package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamashin01/invoiceflow/internal/model"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantAmount     *float64
		wantConfidence model.Confidence
		wantNote       string
	}{
		{
			name:           "clean json",
			text:           `{"amount": 33000, "confidence": "high", "note": "税込合計"}`,
			wantAmount:     floatPtr(33000),
			wantConfidence: model.ConfidenceHigh,
			wantNote:       "税込合計",
		},
		{
			name:           "json embedded in prose",
			text:           `Sure! {"amount": 1000, "confidence": "high"} Thanks`,
			wantAmount:     floatPtr(1000),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "markdown fenced",
			text:           "```json\n{\"amount\": 5500, \"confidence\": \"medium\", \"note\": \"請求金額\"}\n```",
			wantAmount:     floatPtr(5500),
			wantConfidence: model.ConfidenceMedium,
			wantNote:       "請求金額",
		},
		{
			name:           "null amount",
			text:           `{"amount": null, "confidence": "low", "note": "金額を特定できませんでした"}`,
			wantAmount:     nil,
			wantConfidence: model.ConfidenceLow,
			wantNote:       "金額を特定できませんでした",
		},
		{
			name:           "amount as string with commas",
			text:           `{"amount": "1,234,500", "confidence": "high"}`,
			wantAmount:     floatPtr(1234500),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "unknown confidence tier passes through",
			text:           `{"amount": 800, "confidence": "very-high"}`,
			wantAmount:     floatPtr(800),
			wantConfidence: model.Confidence("very-high"),
		},
		{
			name:           "missing confidence maps to unknown",
			text:           `{"amount": 800}`,
			wantAmount:     floatPtr(800),
			wantConfidence: model.ConfidenceUnknown,
		},
		{
			name:           "note containing braces",
			text:           `{"amount": 100, "confidence": "low", "note": "合計欄に {内税} 表記あり"}`,
			wantAmount:     floatPtr(100),
			wantConfidence: model.ConfidenceLow,
			wantNote:       "合計欄に {内税} 表記あり",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseResponse(tt.text)
			if tt.wantAmount == nil {
				assert.Nil(t, got.Amount)
			} else {
				require.NotNil(t, got.Amount)
				assert.Equal(t, *tt.wantAmount, *got.Amount)
			}
			assert.Equal(t, tt.wantConfidence, got.Confidence)
			assert.Equal(t, tt.wantNote, got.Note)
		})
	}
}

func TestParseResponseNoJSON(t *testing.T) {
	got := parseResponse("申し訳ありませんが、金額を読み取れませんでした。")
	assert.Nil(t, got.Amount)
	assert.Equal(t, model.ConfidenceParseFailure, got.Confidence)
	// The raw text is kept so the reviewer can see what the model said.
	assert.Contains(t, got.Note, "読み取れません")
}

func TestParseResponseUnbalancedJSON(t *testing.T) {
	got := parseResponse(`{"amount": 100, "confidence": "high"`)
	assert.Nil(t, got.Amount)
	assert.Equal(t, model.ConfidenceParseFailure, got.Confidence)
}

func TestFirstJSONObject(t *testing.T) {
	span, ok := firstJSONObject(`noise {"a": {"b": 1}} trailing {"c": 2}`)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, span)

	_, ok = firstJSONObject("no braces here")
	assert.False(t, ok)
}

func TestExtractWithoutKeySkips(t *testing.T) {
	e := NewExtractor(Config{})
	got := e.Extract(context.Background(), []byte("%PDF-1.4"))
	assert.Nil(t, got.Amount)
	assert.Equal(t, model.ConfidenceSkipped, got.Confidence)
	assert.Empty(t, got.Note)
	assert.False(t, e.Enabled())
}

func floatPtr(v float64) *float64 { return &v }

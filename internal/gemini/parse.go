package gemini

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yamashin01/invoiceflow/internal/model"
)

// parseResponse turns raw model output into an ExtractionResult. The model
// is instructed to answer with bare JSON but sometimes wraps it in prose or
// code fences, so parsing works on the first balanced object span found in
// the text. Unparseable output maps to the parse-failure tier with the raw
// text kept as the note for diagnosis.
func parseResponse(text string) model.ExtractionResult {
	span, ok := firstJSONObject(text)
	if !ok {
		slog.Warn("No JSON object found in extraction response")
		return model.ExtractionResult{Confidence: model.ConfidenceParseFailure, Note: text}
	}

	var payload struct {
		Amount     any    `json:"amount"`
		Confidence string `json:"confidence"`
		Note       string `json:"note"`
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		slog.Warn("Failed to parse extraction response", "error", err)
		return model.ExtractionResult{Confidence: model.ConfidenceParseFailure, Note: text}
	}

	return model.ExtractionResult{
		Amount:     coerceAmount(payload.Amount),
		Confidence: mapConfidence(payload.Confidence),
		Note:       payload.Note,
	}
}

// firstJSONObject returns the first balanced {...} span in s. Braces
// inside JSON strings don't count toward the balance.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// coerceAmount normalizes the amount field, which the model sends back as
// a number, a numeric string, or null.
func coerceAmount(v any) *float64 {
	switch amount := v.(type) {
	case float64:
		return &amount
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
		if cleaned == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

// mapConfidence translates the model's confidence tiers. Values outside
// the three known tiers pass through as-is rather than failing the
// extraction.
func mapConfidence(s string) model.Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return model.ConfidenceHigh
	case "medium":
		return model.ConfidenceMedium
	case "low":
		return model.ConfidenceLow
	case "":
		return model.ConfidenceUnknown
	default:
		return model.Confidence(s)
	}
}

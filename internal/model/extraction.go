package model

// Confidence is the tier reported by the amount extraction service.
type Confidence string

// Confidence tiers. High/Medium/Low come from the model; the rest are
// produced locally when extraction was skipped or went wrong.
const (
	ConfidenceHigh         Confidence = "高"
	ConfidenceMedium       Confidence = "中"
	ConfidenceLow          Confidence = "低"
	ConfidenceUnknown      Confidence = "不明"
	ConfidenceError        Confidence = "エラー"
	ConfidenceParseFailure Confidence = "解析失敗"
	ConfidenceSkipped      Confidence = "スキップ"
)

// ExtractionResult is the outcome of one amount extraction attempt. It is
// always well-formed: extraction failures are reported through Confidence
// and Note, never as errors.
type ExtractionResult struct {
	Amount     *float64
	Confidence Confidence
	Note       string
}

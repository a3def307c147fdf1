package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yamashin01/invoiceflow/internal/model"
)

func TestRenderRunSummary(t *testing.T) {
	result := model.RunResult{
		Window:       model.Month(2024, time.June, time.UTC),
		SuccessCount: 2,
		SkippedCount: 1,
	}

	out := RenderRunSummary(result)
	assert.Contains(t, out, "請求書自動処理")
	assert.Contains(t, out, "2024/06/01 〜 2024/06/30")
	assert.Contains(t, out, "処理成功: 2件")
	assert.Contains(t, out, "スキップ（処理済み）: 1件")
	assert.Contains(t, out, "エラー: 0件")
}

func TestRenderRunSummaryWithErrors(t *testing.T) {
	result := model.RunResult{
		Window:     model.Month(2024, time.June, time.UTC),
		ErrorCount: 1,
		HasErrors:  true,
		Errors: []model.ErrorEntry{
			{Target: "Acme (a@acme.example)", Message: "search failed"},
		},
	}

	out := RenderRunSummary(result)
	assert.Contains(t, out, "エラー: 1件")
	assert.Contains(t, out, "1. Acme (a@acme.example)")
	assert.Contains(t, out, "search failed")
}

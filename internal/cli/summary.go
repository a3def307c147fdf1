package cli

import (
	"fmt"
	"strings"

	"github.com/yamashin01/invoiceflow/internal/model"
)

// RenderRunSummary renders a processing run result as a boxed terminal
// report.
func RenderRunSummary(result model.RunResult) string {
	var b strings.Builder

	b.WriteString(SubtleStyle.Render("対象期間: "+result.Window.Display()) + "\n\n")
	b.WriteString(FormatSuccess(fmt.Sprintf("処理成功: %d件", result.SuccessCount)) + "\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("  スキップ（処理済み）: %d件", result.SkippedCount)) + "\n")

	if result.HasErrors {
		b.WriteString(FormatError(fmt.Sprintf("エラー: %d件", result.ErrorCount)) + "\n")
		for i, e := range result.Errors {
			b.WriteString(ErrorStyle.Render(fmt.Sprintf("  %d. %s", i+1, e.Target)) + "\n")
			b.WriteString(SubtleStyle.Render("     "+e.Message) + "\n")
		}
	} else {
		b.WriteString(SubtleStyle.Render("  エラー: 0件") + "\n")
	}

	return RenderBox("請求書自動処理", strings.TrimRight(b.String(), "\n"))
}

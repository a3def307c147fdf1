// Package notify composes and delivers the run summary email.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/yamashin01/invoiceflow/internal/model"
)

const dateTimeDisplayFormat = "2006/01/02 15:04"

// Message is a composed notification ready for delivery.
type Message struct {
	Subject string
	Body    string
}

// ComposeSummary builds the end-of-run notification. The subject flags
// runs with errors so the recipient can triage from the inbox list alone.
func ComposeSummary(result model.RunResult, now time.Time) Message {
	var subject string
	if result.HasErrors {
		subject = fmt.Sprintf("【要確認】請求書自動処理 - エラーあり (%d件)", result.ErrorCount)
	} else {
		subject = fmt.Sprintf("【完了】請求書自動処理 - %d件処理", result.SuccessCount)
	}

	lines := []string{
		"請求書自動処理が完了しました。",
		"",
		fmt.Sprintf("処理日時: %s", now.Format(dateTimeDisplayFormat)),
		fmt.Sprintf("対象期間: %s", result.Window.Display()),
		"",
		fmt.Sprintf("処理成功: %d件", result.SuccessCount),
		fmt.Sprintf("スキップ（処理済み）: %d件", result.SkippedCount),
		fmt.Sprintf("エラー: %d件", result.ErrorCount),
		"",
	}

	if result.HasErrors {
		lines = append(lines, "--- エラー詳細 ---")
		for i, e := range result.Errors {
			lines = append(lines,
				fmt.Sprintf("%d. %s", i+1, e.Target),
				fmt.Sprintf("   %s", e.Message),
			)
		}
		lines = append(lines, "", "エラーログシートを確認してください。")
	}

	if result.SuccessCount > 0 {
		lines = append(lines,
			"",
			"処理した請求書は「請求書一覧」シートで確認できます。",
			"ステータスが「要確認」の項目は金額を確認・入力してください。",
			"（金額抽出の信頼度が高い場合は「完了」になっています）",
		)
	}

	return Message{Subject: subject, Body: strings.Join(lines, "\n")}
}

// ComposeFailure builds the immediate notification for a run that aborted
// before producing a summary.
func ComposeFailure(runErr error, now time.Time) Message {
	body := strings.Join([]string{
		"請求書自動処理でエラーが発生しました。",
		"",
		fmt.Sprintf("発生日時: %s", now.Format(dateTimeDisplayFormat)),
		fmt.Sprintf("エラー内容: %s", runErr.Error()),
		"",
		"スクリプトの設定を確認してください。",
	}, "\n")

	return Message{
		Subject: "【エラー】請求書自動処理で問題が発生しました",
		Body:    body,
	}
}

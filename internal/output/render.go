// Package output はレポートの表示と、クリップボード・ファイル・GCS・Slack への出力を担当します。
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"git-work-reporter-go/internal/report"
)

const (
	dateLayout = "2006-01-02"
	rule       = "------------------------------"
)

// Title はレポートの見出しです。HTML のタイトルや Slack のヘッダーにも使用します。
func Title(date time.Time, branch string) string {
	return fmt.Sprintf("Work report %s (%s)", date.Format(dateLayout), branch)
}

// NoCommits は対象日にコミットがなかったことを通知します。
func NoCommits(w io.Writer, date time.Time, branch string) {
	fmt.Fprintf(w, "ℹ️ No commits found for %s on branch %s. Nothing to report.\n", date.Format(dateLayout), branch)
}

// RenderFull は詳細レポートを表示します。
func RenderFull(w io.Writer, full report.FullReport) {
	fmt.Fprintln(w, "\n--- 📝 Full report ---")
	fmt.Fprintln(w, full.Markdown)
	fmt.Fprintln(w, rule)
}

// RenderSummary はサマリーと文字数を表示します。目標文字数を超えた場合は警告を添えます。
func RenderSummary(w io.Writer, summary report.SummaryReport) {
	fmt.Fprintln(w, "\n--- ✏️ Summary ---")
	fmt.Fprintln(w, summary.Text)
	fmt.Fprintln(w, summaryCountLine(summary))
	fmt.Fprintln(w, rule)
}

func summaryCountLine(summary report.SummaryReport) string {
	if summary.OverTarget() {
		return fmt.Sprintf("⚠️ (%d chars, over the %d character target)", summary.CharCount, report.SummaryTargetChars)
	}
	return fmt.Sprintf("(%d chars)", summary.CharCount)
}

// Document は保存や通知に使う Markdown 文書を組み立てます。nil のレポートは含めません。
func Document(full *report.FullReport, summary *report.SummaryReport, date time.Time, branch string) string {
	var sb strings.Builder
	switch {
	case full != nil:
		sb.WriteString(full.Markdown)
		sb.WriteString("\n")
		if summary != nil {
			sb.WriteString("\n## Summary\n\n")
			sb.WriteString(summary.Text)
			sb.WriteString("\n")
		}
	case summary != nil:
		sb.WriteString("# " + Title(date, branch) + "\n\n")
		sb.WriteString(summary.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ClipboardText はクリップボードへ書き込むテキストを返します。
// サマリーがあればサマリーを、なければ詳細レポートを選びます。
func ClipboardText(full *report.FullReport, summary *report.SummaryReport) string {
	if summary != nil {
		return summary.Text
	}
	if full != nil {
		return full.Markdown
	}
	return ""
}

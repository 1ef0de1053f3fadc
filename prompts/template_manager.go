package prompts

import (
	_ "embed"
	"fmt"
)

// --- テンプレートのリソース定義 (go:embed) ---

//go:embed full_report.md
var FullReportTemplate string

//go:embed summary_report.md
var SummaryReportTemplate string

// Kind はプロンプトの種類です。
type Kind string

const (
	KindFull    Kind = "full"
	KindSummary Kind = "summary"
)

// GetReportTemplate は、プロンプトの種類に基づいて、テンプレート名とその内容を返します。
func GetReportTemplate(kind Kind) (name string, content string, err error) {
	switch kind {
	case KindFull:
		name = "full_report"
		content = FullReportTemplate
	case KindSummary:
		name = "summary_report"
		content = SummaryReportTemplate
	default:
		return "", "", fmt.Errorf("unknown prompt kind %q: choose full or summary", kind)
	}

	if content == "" {
		return "", "", fmt.Errorf("prompt template for %q is empty", kind)
	}
	return name, content, nil
}

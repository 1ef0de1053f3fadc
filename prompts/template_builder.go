package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// ----------------------------------------------------------------
// テンプレート構造体
// ----------------------------------------------------------------

// FullTemplateData は詳細レポート用プロンプトに渡すデータです。
type FullTemplateData struct {
	Date    string
	Branch  string
	Commits []string
}

// SummaryTemplateData はサマリー用プロンプトに渡すデータです。
// Context は詳細レポート本文、または詳細レポートを生成しない場合のコミット一覧です。
// Commits は Context の内容に関わらず常にプロンプトへ含めます。
type SummaryTemplateData struct {
	Date       string
	Branch     string
	Context    string
	FromReport bool
	Commits    []string
	MaxChars   int
}

// ----------------------------------------------------------------
// ビルダー実装
// ----------------------------------------------------------------

// ReportPromptBuilder は詳細レポートとサマリーのプロンプトを組み立てます。
// 同じ入力からは常に同じプロンプトが生成されます。
type ReportPromptBuilder struct {
	full    *template.Template
	summary *template.Template
}

// NewReportPromptBuilder は埋め込みテンプレートを解析して ReportPromptBuilder を初期化します。
func NewReportPromptBuilder() (*ReportPromptBuilder, error) {
	full, err := parse(KindFull)
	if err != nil {
		return nil, err
	}
	summary, err := parse(KindSummary)
	if err != nil {
		return nil, err
	}
	return &ReportPromptBuilder{full: full, summary: summary}, nil
}

func parse(kind Kind) (*template.Template, error) {
	name, content, err := GetReportTemplate(kind)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("プロンプトテンプレートの解析に失敗しました (%s): %w", name, err)
	}
	return tmpl, nil
}

// BuildFull は詳細レポート用のプロンプトを完成させます。
func (b *ReportPromptBuilder) BuildFull(data FullTemplateData) (string, error) {
	return execute(b.full, data)
}

// BuildSummary はサマリー用のプロンプトを完成させます。
func (b *ReportPromptBuilder) BuildSummary(data SummaryTemplateData) (string, error) {
	return execute(b.summary, data)
}

func execute(tmpl *template.Template, data any) (string, error) {
	if tmpl == nil {
		return "", fmt.Errorf("プロンプトテンプレートが初期化されていません。NewReportPromptBuilder を使用してください")
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトの実行に失敗しました (%s): %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}

// Package report は抽出したコミットからプロンプトを組み立て、AI プロバイダに詳細レポートと
// サマリーを生成させます。
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"git-work-reporter-go/internal/adapters"
	"git-work-reporter-go/internal/gitclient"
	"git-work-reporter-go/prompts"
)

// SummaryTargetChars はサマリーの目標文字数です。超過しても切り詰めません。
const SummaryTargetChars = 200

const dateLayout = "2006-01-02"

// FullReport は Markdown 形式の詳細レポートです。
type FullReport struct {
	Markdown string
}

// SummaryReport は 1〜2 文の短いサマリーです。
type SummaryReport struct {
	Text string
	// CharCount は前後の空白を除いた Text のルーン数です。
	CharCount int
}

// OverTarget は目標文字数を超えているか判定します。
func (s SummaryReport) OverTarget() bool {
	return s.CharCount > SummaryTargetChars
}

// NewSummaryReport は text を整形し、文字数を数えた SummaryReport を返します。
func NewSummaryReport(text string) SummaryReport {
	text = strings.TrimSpace(text)
	return SummaryReport{Text: text, CharCount: utf8.RuneCountInString(text)}
}

// Generator は 1 レポートにつき 1 回だけプロバイダを呼び出します。
type Generator struct {
	ai      adapters.Completer
	prompts *prompts.ReportPromptBuilder
}

// NewGenerator は依存関係を注入して Generator を生成します。
func NewGenerator(ai adapters.Completer, pb *prompts.ReportPromptBuilder) *Generator {
	return &Generator{ai: ai, prompts: pb}
}

// GenerateFull は詳細レポートを生成します。
func (g *Generator) GenerateFull(ctx context.Context, batch gitclient.CommitBatch, date time.Time) (FullReport, error) {
	prompt, err := g.prompts.BuildFull(prompts.FullTemplateData{
		Date:    date.Format(dateLayout),
		Branch:  batch.Branch,
		Commits: batch.Lines(),
	})
	if err != nil {
		return FullReport{}, fmt.Errorf("詳細レポートのプロンプト組み立てに失敗しました: %w", err)
	}

	slog.Info("詳細レポートを生成中...", "commits", len(batch.Commits), "branch", batch.Branch)
	text, err := g.ai.Complete(ctx, prompt)
	if err != nil {
		return FullReport{}, err
	}
	return FullReport{Markdown: strings.TrimSpace(text)}, nil
}

// GenerateSummary はサマリーを生成します。
// full が nil の場合は詳細レポートの代わりにコミット一覧を文脈として使用します。
func (g *Generator) GenerateSummary(ctx context.Context, batch gitclient.CommitBatch, full *FullReport, date time.Time) (SummaryReport, error) {
	data := prompts.SummaryTemplateData{
		Date:     date.Format(dateLayout),
		Branch:   batch.Branch,
		Context:  batch.Text(),
		Commits:  batch.Lines(),
		MaxChars: SummaryTargetChars,
	}
	if full != nil {
		data.Context = full.Markdown
		data.FromReport = true
	}

	prompt, err := g.prompts.BuildSummary(data)
	if err != nil {
		return SummaryReport{}, fmt.Errorf("サマリーのプロンプト組み立てに失敗しました: %w", err)
	}

	slog.Info("サマリーを生成中...", "from_report", data.FromReport)
	text, err := g.ai.Complete(ctx, prompt)
	if err != nil {
		return SummaryReport{}, err
	}

	summary := NewSummaryReport(text)
	if summary.OverTarget() {
		slog.Warn("サマリーが目標文字数を超えています。", "chars", summary.CharCount, "target", SummaryTargetChars)
	}
	return summary, nil
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"git-work-reporter-go/internal/adapters"
	"git-work-reporter-go/internal/config"
	"git-work-reporter-go/internal/gitclient"
	"git-work-reporter-go/internal/output"
	"git-work-reporter-go/internal/report"
)

// ReportSaver はレポート文書を保存します。
type ReportSaver interface {
	Save(ctx context.Context, target, title, markdown string) error
}

// Result は 1 回の実行で生成されたレポートです。生成しなかったレポートは nil です。
type Result struct {
	Batch   gitclient.CommitBatch
	Date    time.Time
	Full    *report.FullReport
	Summary *report.SummaryReport
}

// ReportRunner は日報生成のビジネスロジックを実行します。
// 必要な依存関係（アダプタ）をフィールドとして保持します。
type ReportRunner struct {
	gitService gitclient.Service
	generator  *report.Generator
	out        io.Writer
	copier     adapters.Copier
	saver      ReportSaver
	notifier   adapters.Notifier
	now        func() time.Time
}

// Option は ReportRunner の出力先を設定します。
type Option func(*ReportRunner)

func WithCopier(c adapters.Copier) Option {
	return func(r *ReportRunner) { r.copier = c }
}

func WithSaver(s ReportSaver) Option {
	return func(r *ReportRunner) { r.saver = s }
}

// WithNotifier は Slack などへの通知を有効にします。nil の場合は通知しません。
func WithNotifier(n adapters.Notifier) Option {
	return func(r *ReportRunner) { r.notifier = n }
}

// WithClock は「今日」の判定に使う時計を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(r *ReportRunner) { r.now = now }
}

// NewReportRunner は ReportRunner の新しいインスタンスを生成します。
// 依存関係はコンストラクタ経由で注入されます。
func NewReportRunner(git gitclient.Service, gen *report.Generator, out io.Writer, opts ...Option) *ReportRunner {
	r := &ReportRunner{
		gitService: git,
		generator:  gen,
		out:        out,
		copier:     adapters.SystemClipboard{},
		saver:      output.NewSaver(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run はコミットを抽出し、設定されたレポートを生成して出力します。
//
// 詳細レポートは生成直後に表示するため、続くサマリー生成が失敗しても失われません。
// コミットがない場合はプロバイダを呼び出さずに正常終了します。
func (r *ReportRunner) Run(ctx context.Context, cfg config.ReportConfig) (Result, error) {
	date := cfg.TargetDate(r.now())
	res := Result{Date: date}

	slog.Info("コミットの抽出を開始します。", "path", cfg.RepoPath, "date", date.Format(config.DateLayout))
	batch, err := r.gitService.Extract(ctx, cfg.RepoPath, gitclient.DayWindow(date))
	if err != nil {
		return res, err
	}
	res.Batch = batch

	if batch.IsEmpty() {
		output.NoCommits(r.out, date, batch.Branch)
		return res, nil
	}
	slog.Info("コミットを取得しました。", "count", len(batch.Commits), "branch", batch.Branch)

	if cfg.ReportType.WantsFull() {
		full, err := r.generator.GenerateFull(ctx, batch, date)
		if err != nil {
			return res, err
		}
		res.Full = &full
		output.RenderFull(r.out, full)
	}

	if cfg.ReportType.WantsSummary() {
		summary, err := r.generator.GenerateSummary(ctx, batch, res.Full, date)
		if err != nil {
			return res, err
		}
		res.Summary = &summary
		output.RenderSummary(r.out, summary)
	}

	return res, r.deliver(ctx, cfg, res)
}

// deliver はクリップボード・保存・通知を順に実行し、失敗をまとめて返します。
func (r *ReportRunner) deliver(ctx context.Context, cfg config.ReportConfig, res Result) error {
	var errs []error
	title := output.Title(res.Date, res.Batch.Branch)

	if cfg.CopyToClipboard && r.copier != nil {
		if err := r.copier.Copy(output.ClipboardText(res.Full, res.Summary)); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintln(r.out, "📋 Copied to clipboard.")
		}
	}

	doc := output.Document(res.Full, res.Summary, res.Date, res.Batch.Branch)

	if cfg.Output != "" && r.saver != nil {
		if err := r.saver.Save(ctx, cfg.Output, title, doc); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintf(r.out, "💾 Saved report to %s\n", cfg.Output)
		}
	}

	if r.notifier != nil {
		fmt.Fprintln(r.out, "📤 Posting report to Slack...")
		if err := r.notifier.Notify(ctx, title, doc); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintln(r.out, "✅ Posted report to Slack.")
		}
	}

	return errors.Join(errs...)
}

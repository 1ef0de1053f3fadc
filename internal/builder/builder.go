package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"git-work-reporter-go/internal/adapters"
	"git-work-reporter-go/internal/config"
	"git-work-reporter-go/internal/gitclient"
	"git-work-reporter-go/internal/output"
	"git-work-reporter-go/internal/report"
	"git-work-reporter-go/internal/runner"
	"git-work-reporter-go/prompts"
)

// BuildReportRunner は、必要な依存関係をすべて構築し、
// 実行可能な ReportRunner のインスタンスを返します。
func BuildReportRunner(ctx context.Context, cfg config.ReportConfig, out io.Writer) (*runner.ReportRunner, error) {
	// 1. GitService の構築
	gitService := gitclient.NewClient()
	slog.Debug("GitService を構築しました。", slog.String("repo_path", cfg.RepoPath))

	// 2. AI プロバイダの構築 (呼び出しは Run まで行わない)
	providerCfg, err := cfg.ProviderConfig()
	if err != nil {
		return nil, err
	}
	completer, err := adapters.NewCompleter(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("AI プロバイダの構築に失敗しました: %w", err)
	}
	slog.Debug("Completer を構築しました。", "provider", providerCfg.String())

	// 3. Prompt Builder の構築
	promptBuilder, err := prompts.NewReportPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("Prompt Builder の構築に失敗しました: %w", err)
	}

	// 4. 出力先の構築
	opts := []runner.Option{
		runner.WithCopier(adapters.SystemClipboard{}),
		runner.WithSaver(output.NewSaver()),
	}
	if cfg.SlackWebhookURL != "" {
		opts = append(opts, runner.WithNotifier(adapters.NewSlackNotifier(cfg.SlackWebhookURL)))
		slog.Debug("Slack 通知を有効にしました。")
	}

	// 5. 依存関係を注入して Runner を組み立てる
	reportRunner := runner.NewReportRunner(
		gitService,
		report.NewGenerator(completer, promptBuilder),
		out,
		opts...,
	)

	slog.Debug("ReportRunner の構築が完了しました。")
	return reportRunner, nil
}

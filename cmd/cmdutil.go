package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"git-work-reporter-go/internal/config"
)

// setupLogger は charmbracelet/log を slog のハンドラとして既定のロガーに設定します。
// 標準出力はレポート本文に使うため、ログは常に標準エラーへ出します。
func setupLogger(w io.Writer, verbose bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "git-work-reporter",
	})
	slog.SetDefault(slog.New(handler))
}

// overridesFromFlags は明示的に指定されたフラグ値を Overrides に変換します。
func overridesFromFlags(f *rootFlags) config.Overrides {
	return config.Overrides{
		APIProvider:     f.API,
		APIKey:          f.Key,
		Model:           f.Model,
		ReportType:      f.Report,
		Copy:            f.Copy,
		RepoPath:        f.Path,
		Date:            f.Date,
		Output:          f.Output,
		SlackWebhookURL: f.SlackWebhookURL,
	}
}

// openStore はグローバル設定ファイルの Store を返します。
func openStore() (*config.Store, error) {
	path, err := config.DefaultStorePath()
	if err != nil {
		return nil, err
	}
	return config.NewStore(path), nil
}

// loadSources はプロジェクト設定・環境変数・グローバル設定ファイルを読み込みます。
func loadSources() (config.Sources, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Sources{}, fmt.Errorf("get working directory: %w", err)
	}
	project, projectPath, err := config.LoadProjectValues(wd)
	if err != nil {
		return config.Sources{}, err
	}
	if projectPath != "" {
		slog.Debug("プロジェクト設定ファイルを読み込みました。", "path", projectPath, "keys", project.Keys())
	}

	store, err := openStore()
	if err != nil {
		return config.Sources{}, err
	}
	global, err := store.Load()
	if err != nil {
		return config.Sources{}, err
	}
	slog.Debug("グローバル設定ファイルを読み込みました。", "path", store.Path(), "exists", store.Exists())

	return config.Sources{
		Project: project,
		Env:     config.EnvironmentValues(os.LookupEnv),
		Global:  global,
	}, nil
}

// resolveConfig は全ての設定ソースを読み込み、有効な設定を一度だけ構築します。
func resolveConfig(o config.Overrides) (config.ReportConfig, error) {
	src, err := loadSources()
	if err != nil {
		return config.ReportConfig{}, err
	}
	cfg, err := config.Resolve(o, src)
	if err != nil {
		return config.ReportConfig{}, err
	}
	slog.Debug("設定を解決しました。",
		"provider", cfg.APIProvider,
		"model", cfg.Model,
		"report", cfg.ReportType,
		"copy", cfg.CopyToClipboard,
		"path", cfg.RepoPath,
	)
	return cfg, nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"git-work-reporter-go/internal/builder"
	"git-work-reporter-go/internal/config"
)

// rootFlags はルートコマンドのフラグ値を保持します。
type rootFlags struct {
	Path            string
	Date            string
	Report          string
	API             string
	Key             string
	Model           string
	Copy            bool
	Init            bool
	ShowConfig      bool
	Output          string
	SlackWebhookURL string
	Verbose         bool
}

var flags = &rootFlags{}

// RootCmd はアプリケーションのベースコマンド（"git-work-reporter-go" 本体）です。
var RootCmd = &cobra.Command{
	Use:   "git-work-reporter-go",
	Short: "Generate a daily work report from your git commits with an AI provider",
	Long: `git-work-reporter-go reads one day's non-merge commits from a local git repository
and asks an AI provider (openai, perplexity or gemini) to write a detailed Markdown
report and/or a short summary of about 200 characters.

Settings are resolved per option in this order:
  command-line flags > project file (.git-work-reporter.env or .env) >
  environment variables > global config file (--init) > built-in defaults`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd.ErrOrStderr(), flags.Verbose)
	},
	RunE: runRoot,
}

func init() {
	f := RootCmd.Flags()
	f.StringVarP(&flags.Path, "path", "p", ".", "path to the git repository")
	f.StringVarP(&flags.Date, "date", "d", "", "target date in YYYY-MM-DD (default: today)")
	f.StringVarP(&flags.Report, "report", "r", "", "report type: all, full or summary (default: all)")
	f.StringVarP(&flags.API, "api", "a", "", "AI provider: "+strings.Join(config.ProviderIDs(), ", ")+" (default: openai)")
	f.StringVarP(&flags.Key, "key", "k", "", "API key for the selected provider")
	f.StringVarP(&flags.Model, "model", "m", "", "model name (default: the provider's default model)")
	f.BoolVar(&flags.Copy, "copy", false, "copy the result to the clipboard")
	f.BoolVar(&flags.Init, "init", false, "interactively write the global config file")
	f.BoolVar(&flags.ShowConfig, "config", false, "show the global config file path and its settings")
	f.StringVarP(&flags.Output, "output", "o", "", "also save the report to a file or gs://bucket/object (.html is converted)")
	f.StringVar(&flags.SlackWebhookURL, "slack-webhook-url", "", "post the report to this Slack Incoming Webhook")
	RootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")

	RootCmd.MarkFlagsMutuallyExclusive("init", "config")
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case flags.Init:
		return runInit(ctx, cmd.InOrStdin(), out)
	case flags.ShowConfig:
		return showConfig(out)
	}

	cfg, err := resolveConfig(overridesFromFlags(flags))
	if err != nil {
		return err
	}

	reportRunner, err := builder.BuildReportRunner(ctx, cfg, out)
	if err != nil {
		return err
	}
	_, err = reportRunner.Run(ctx, cfg)
	return err
}

// Execute はルートコマンドを実行し、アプリケーションを起動します。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// エラー発生時に一行のメッセージを出力し、終了コード1で終了
		fmt.Fprintln(os.Stderr, "Error: "+oneLine(err))
		os.Exit(1)
	}
}

func oneLine(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"git-work-reporter-go/internal/config"
)

// showConfig はグローバル設定ファイルのパスと、秘密情報を伏せた設定一覧を表示します。
func showConfig(out io.Writer) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	values, err := store.Load()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Config file: %s\n", store.Path())
	if !store.Exists() {
		fmt.Fprintln(out, "  (not created yet, run with --init)")
	}
	printSettings(out, config.Redacted(values))

	if wd, err := os.Getwd(); err == nil {
		if projectPath, err := config.FindProjectFile(wd); err == nil && projectPath != "" {
			fmt.Fprintf(out, "Project file: %s\n", projectPath)
		}
	}
	return nil
}

func printSettings(out io.Writer, settings []config.Setting) {
	if len(settings) == 0 {
		fmt.Fprintln(out, "  (no settings)")
		return
	}
	for _, s := range settings {
		fmt.Fprintf(out, "  %s = %s\n", s.Key, s.Value)
	}
}

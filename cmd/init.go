package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"git-work-reporter-go/internal/apperr"
	"git-work-reporter-go/internal/config"
)

// runInit は対話形式で設定を尋ね、グローバル設定ファイルへ非破壊的にマージします。
func runInit(_ context.Context, in io.Reader, out io.Writer) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	current, err := store.Load()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	answers, err := collectInitAnswers(reader, out, secretReader(in, reader, out), current)
	if err != nil {
		return err
	}
	if err := store.Merge(answers); err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Saved settings to %s\n", store.Path())
	return nil
}

// secretReader は端末からの入力であればエコーせずに読み取ります。
func secretReader(in io.Reader, reader *bufio.Reader, out io.Writer) func() (string, error) {
	return func() (string, error) {
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			secret, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("read API key: %w", err)
			}
			return strings.TrimSpace(string(secret)), nil
		}
		return readLine(reader)
	}
}

// collectInitAnswers は各設定項目を尋ね、入力された値のみを返します。
// 空の入力は既存の値 (または既定値) をそのまま使います。
func collectInitAnswers(reader *bufio.Reader, out io.Writer, readSecret func() (string, error), current config.Values) (map[string]any, error) {
	answers := map[string]any{}

	fmt.Fprintln(out, "🔧 git-work-reporter setup (press Enter to keep the value in brackets)")

	providerDefault := valueOr(current, config.KeyAPIProvider, config.DefaultProvider)
	providerID, err := ask(reader, out, fmt.Sprintf("AI provider (%s)", strings.Join(config.ProviderIDs(), "/")), providerDefault)
	if err != nil {
		return nil, err
	}
	spec, ok := config.LookupProvider(providerID)
	if !ok {
		return nil, apperr.NewInvalidOption("api",
			"invalid API provider %q: choose one of %s", providerID, strings.Join(config.ProviderIDs(), ", "))
	}
	answers[config.KeyAPIProvider] = spec.ID

	keyHint := "not set"
	if existing, ok := current.Get(spec.APIKeySetting()); ok {
		keyHint = config.MaskSecret(existing)
	}
	fmt.Fprintf(out, "%s API key [%s]: ", spec.Title, keyHint)
	key, err := readSecret()
	if err != nil {
		return nil, err
	}
	if key != "" {
		answers[spec.APIKeySetting()] = key
	}

	model, err := ask(reader, out, spec.Title+" model", valueOr(current, spec.ModelSetting(), spec.DefaultModel))
	if err != nil {
		return nil, err
	}
	answers[spec.ModelSetting()] = model

	reportRaw, err := ask(reader, out, "Report type (all/full/summary)", valueOr(current, config.KeyReportType, string(config.DefaultReportType)))
	if err != nil {
		return nil, err
	}
	reportType, err := config.ParseReportType(reportRaw)
	if err != nil {
		return nil, err
	}
	answers[config.KeyReportType] = string(reportType)

	copyRaw, err := ask(reader, out, "Copy the result to the clipboard (true/false)", valueOr(current, config.KeyCopyToClipboard, "false"))
	if err != nil {
		return nil, err
	}
	copyToClipboard, err := parseYesNo(copyRaw)
	if err != nil {
		return nil, apperr.NewInvalidOption("copy", "invalid answer %q: expected true or false", copyRaw)
	}
	answers[config.KeyCopyToClipboard] = copyToClipboard

	return answers, nil
}

func ask(reader *bufio.Reader, out io.Writer, label, def string) (string, error) {
	fmt.Fprintf(out, "%s [%s]: ", label, def)
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// readLine は 1 行を読み取ります。最終行に改行がなくても受け付けます。
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func valueOr(v config.Values, key, def string) string {
	if s, ok := v.Get(key); ok {
		return s
	}
	return def
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

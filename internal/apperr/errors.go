// Package apperr は CLI 全体で共有するエラー分類を定義します。
//
// すべてのエラーは致命的であり、cmd.Execute で一行のメッセージとして表示され、
// 終了コード 1 でプロセスを終了させます。
package apperr

import (
	"errors"
	"fmt"
)

// ConfigCode は設定エラーの種類を表します。
type ConfigCode string

const (
	// InvalidOption は値が許可された集合に含まれないことを示します。
	InvalidOption ConfigCode = "invalid_option"
	// MissingCredential は解決されたプロバイダの API キーが存在しないことを示します。
	MissingCredential ConfigCode = "missing_credential"
)

// ConfigError は利用者が入力を修正する必要がある設定エラーです。
type ConfigError struct {
	Code   ConfigCode
	Option string
	Msg    string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// NewInvalidOption は不正なオプション値に対する ConfigError を生成します。
func NewInvalidOption(option, format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:   InvalidOption,
		Option: option,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// NewMissingCredential は API キーの提供方法を列挙した ConfigError を生成します。
func NewMissingCredential(provider, envVar string) *ConfigError {
	return &ConfigError{
		Code:   MissingCredential,
		Option: "key",
		Msg: fmt.Sprintf(
			"no API key configured for provider %q: pass it with --key, save it to the global config file with --init, or set the %s environment variable",
			provider, envVar,
		),
	}
}

// GitError はリポジトリの検出・読み取り、または日付指定の解釈に失敗したことを示します。
type GitError struct {
	Op   string
	Path string
	Err  error
}

func (e *GitError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("git %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("git %s (%s): %v", e.Op, e.Path, e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

// ProviderError は AI プロバイダ呼び出しの失敗です。内部でのリトライは行いません。
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ClipboardError はクリップボードへの書き込み失敗です。
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("copy to clipboard: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// IOError はレポートの保存・送信先への書き込み失敗です。
type IOError struct {
	Target string
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Target, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsMissingCredential は err が MissingCredential の ConfigError を含むか判定します。
func IsMissingCredential(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr) && cfgErr.Code == MissingCredential
}

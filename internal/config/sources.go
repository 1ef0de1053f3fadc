package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// 設定キー (グローバル設定ファイルのキー名と共通)
const (
	KeyAPIProvider     = "api_provider"
	KeyReportType      = "report_type"
	KeyCopyToClipboard = "copy_to_clipboard"
	KeySlackWebhookURL = "slack_webhook_url"
)

// 環境変数およびプロジェクト設定ファイルで使用する変数名
const (
	EnvAPIProvider     = "WORK_REPORT_API_PROVIDER"
	EnvReportType      = "WORK_REPORT_TYPE"
	EnvCopyToClipboard = "WORK_REPORT_COPY"
	EnvSlackWebhookURL = "SLACK_WEBHOOK_URL"
)

// ProjectFileNames はプロジェクト設定ファイルとして探索するファイル名です (優先順)。
var ProjectFileNames = []string{".git-work-reporter.env", ".env"}

// Values は 1 つの設定ソースが提供する、設定キーから値へのフラットなマップです。
type Values map[string]string

// Get は空白以外の値が設定されている場合のみ値を返します。
func (v Values) Get(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v[key]
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Keys はソート済みのキー一覧を返します。
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// envVarKeys は環境変数名から設定キーへの対応表を構築します。
func envVarKeys() map[string]string {
	m := map[string]string{
		EnvAPIProvider:     KeyAPIProvider,
		EnvReportType:      KeyReportType,
		EnvCopyToClipboard: KeyCopyToClipboard,
		EnvSlackWebhookURL: KeySlackWebhookURL,
	}
	for _, p := range providerTable {
		m[p.KeyEnv] = p.APIKeySetting()
		m[p.ModelEnv] = p.ModelSetting()
	}
	return m
}

// FromEnvMap は環境変数形式のマップを設定キーの Values に変換します。
// 対応表にない変数は無視されます。
func FromEnvMap(env map[string]string) Values {
	values := Values{}
	for name, key := range envVarKeys() {
		if s, ok := env[name]; ok && strings.TrimSpace(s) != "" {
			values[key] = s
		}
	}
	return values
}

// EnvironmentValues はプロセス環境変数から Values を構築します。
// lookup には通常 os.LookupEnv を渡します。
func EnvironmentValues(lookup func(string) (string, bool)) Values {
	env := map[string]string{}
	for name := range envVarKeys() {
		if s, ok := lookup(name); ok {
			env[name] = s
		}
	}
	return FromEnvMap(env)
}

// FindProjectFile は start から親ディレクトリへ向かってプロジェクト設定ファイルを探索します。
// 見つからない場合は空文字列を返します。
func FindProjectFile(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve project directory: %w", err)
	}
	for {
		for _, name := range ProjectFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadProjectValues はプロジェクト設定ファイルを読み込みます。
// ファイルが存在しない場合は空の Values と空のパスを返します。
// プロセスの環境変数は変更しません。
func LoadProjectValues(start string) (Values, string, error) {
	path, err := FindProjectFile(start)
	if err != nil || path == "" {
		return Values{}, "", err
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, path, fmt.Errorf("read project settings %s: %w", path, err)
	}
	return FromEnvMap(env), path, nil
}

// MaskSecret は秘密情報を先頭・末尾 4 文字のみ残して伏せ字にします。
// 12 文字以下の値と空文字列は全体を伏せます。文字数はルーン単位で数えます。
func MaskSecret(s string) string {
	r := []rune(s)
	if len(r) <= 12 {
		return "****"
	}
	return string(r[:4]) + "****" + string(r[len(r)-4:])
}

// IsSecretKey は表示時に伏せるべき設定キーか判定します。
func IsSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key") || key == KeySlackWebhookURL
}

package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git-work-reporter-go/internal/apperr"
)

// DateLayout は --date フラグの書式です。
const DateLayout = "2006-01-02"

// Overrides はコマンドラインで明示的に指定された値です。
// 空文字列 (Copy は false) は「未指定」を意味し、下位の設定ソースに委ねます。
type Overrides struct {
	APIProvider     string
	APIKey          string
	Model           string
	ReportType      string
	Copy            bool
	RepoPath        string
	Date            string
	Output          string
	SlackWebhookURL string
}

// Sources は CLI 以外の設定ソースです。上から順に優先されます。
type Sources struct {
	Project Values
	Env     Values
	Global  Values
}

// layers は優先順位の高い順に並べた設定ソースです。
func (s Sources) layers() []Values {
	return []Values{s.Project, s.Env, s.Global}
}

// lookup は優先順位に従い、最初に値を持つソースの値を返します。
func (s Sources) lookup(key string) (string, bool) {
	for _, layer := range s.layers() {
		if v, ok := layer.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// resolveString は CLI > Project > Env > Global > default の順で値を解決します。
func (s Sources) resolveString(override, key, def string) string {
	if strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override)
	}
	if v, ok := s.lookup(key); ok {
		return v
	}
	return def
}

// Resolve は各オプションを独立に優先順位解決し、検証済みの ReportConfig を返します。
func Resolve(o Overrides, src Sources) (ReportConfig, error) {
	providerID := strings.ToLower(src.resolveString(o.APIProvider, KeyAPIProvider, DefaultProvider))
	spec, ok := LookupProvider(providerID)
	if !ok {
		return ReportConfig{}, apperr.NewInvalidOption("api",
			"invalid API provider %q: choose one of %s", providerID, strings.Join(ProviderIDs(), ", "))
	}

	reportType, err := ParseReportType(src.resolveString(o.ReportType, KeyReportType, string(DefaultReportType)))
	if err != nil {
		return ReportConfig{}, err
	}

	copyToClipboard, err := resolveCopy(o.Copy, src)
	if err != nil {
		return ReportConfig{}, err
	}

	date, err := resolveDate(o.Date)
	if err != nil {
		return ReportConfig{}, err
	}

	repoPath, err := resolveRepoPath(o.RepoPath)
	if err != nil {
		return ReportConfig{}, err
	}

	cfg := ReportConfig{
		APIProvider:     spec.ID,
		APIKey:          src.resolveString(o.APIKey, spec.APIKeySetting(), ""),
		Model:           src.resolveString(o.Model, spec.ModelSetting(), spec.DefaultModel),
		ReportType:      reportType,
		CopyToClipboard: copyToClipboard,
		RepoPath:        repoPath,
		Date:            date,
		Output:          strings.TrimSpace(o.Output),
		SlackWebhookURL: src.resolveString(o.SlackWebhookURL, KeySlackWebhookURL, ""),
	}

	if cfg.APIKey == "" {
		return ReportConfig{}, apperr.NewMissingCredential(spec.ID, spec.KeyEnv)
	}
	return cfg, nil
}

func resolveCopy(flag bool, src Sources) (bool, error) {
	if flag {
		return true, nil
	}
	raw, ok := src.lookup(KeyCopyToClipboard)
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.NewInvalidOption("copy",
			"invalid %s value %q: expected true or false", KeyCopyToClipboard, raw)
	}
	return b, nil
}

// resolveDate は YYYY-MM-DD をローカルタイムゾーンの 0 時として解釈します。
func resolveDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseDate は厳密な YYYY-MM-DD 形式の日付をローカル時刻で解析します。
func ParseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, &apperr.GitError{
			Op:  "parse date",
			Err: fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw),
		}
	}
	return d, nil
}

func resolveRepoPath(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		raw = "."
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", &apperr.GitError{Op: "resolve path", Path: raw, Err: err}
	}
	return abs, nil
}

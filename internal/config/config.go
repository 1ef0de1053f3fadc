package config

import (
	"fmt"
	"strings"
	"time"

	"git-work-reporter-go/internal/apperr"
)

// ReportType は生成するレポートの種類です。
type ReportType string

const (
	ReportAll     ReportType = "all"
	ReportFull    ReportType = "full"
	ReportSummary ReportType = "summary"
)

// DefaultReportType はどの設定ソースにも指定がない場合のレポート種別です。
const DefaultReportType = ReportAll

// ParseReportType は文字列を ReportType に変換し、未知の値を拒否します。
func ParseReportType(s string) (ReportType, error) {
	switch rt := ReportType(strings.ToLower(strings.TrimSpace(s))); rt {
	case ReportAll, ReportFull, ReportSummary:
		return rt, nil
	default:
		return "", apperr.NewInvalidOption("report",
			"invalid report type %q: choose one of all, full, summary", s)
	}
}

// WantsFull は詳細レポートの生成が必要か判定します。
func (r ReportType) WantsFull() bool {
	return r == ReportAll || r == ReportFull
}

// WantsSummary はサマリーの生成が必要か判定します。
func (r ReportType) WantsSummary() bool {
	return r == ReportAll || r == ReportSummary
}

// ReportConfig は 1 回の実行で使用する、優先順位解決済みの有効な設定です。
// Resolve で一度だけ構築され、以降は値として受け渡されるのみで変更されません。
type ReportConfig struct {
	APIProvider     string
	APIKey          string
	Model           string
	ReportType      ReportType
	CopyToClipboard bool
	RepoPath        string
	// Date が nil の場合は実行日 (ローカル時刻) を対象とします。
	Date            *time.Time
	Output          string
	SlackWebhookURL string
}

// TargetDate は対象日を返します。Date 未指定時は now を返します。
func (c ReportConfig) TargetDate(now time.Time) time.Time {
	if c.Date != nil {
		return *c.Date
	}
	return now
}

// ProviderConfig は選択されたプロバイダへの接続情報を返します。
func (c ReportConfig) ProviderConfig() (ProviderConfig, error) {
	spec, ok := LookupProvider(c.APIProvider)
	if !ok {
		return ProviderConfig{}, apperr.NewInvalidOption("api",
			"unknown API provider %q", c.APIProvider)
	}
	return ProviderConfig{
		Spec:    spec,
		APIKey:  c.APIKey,
		Model:   c.Model,
		BaseURL: spec.BaseURL,
	}, nil
}

// ProviderConfig はプロバイダ呼び出しに必要な {baseUrl, apiKey, model} の組です。
type ProviderConfig struct {
	Spec    ProviderSpec
	APIKey  string
	Model   string
	BaseURL string
}

// String はログ出力用に API キーを伏せた表現を返します。
func (p ProviderConfig) String() string {
	return fmt.Sprintf("%s(model=%s, base_url=%s, api_key=%s)",
		p.Spec.ID, p.Model, p.BaseURL, MaskSecret(p.APIKey))
}

package config

import (
	"strings"
)

// Backend はプロバイダとの通信方式です。
type Backend string

const (
	// BackendOpenAICompatible は OpenAI 互換の Chat Completions API を話すプロバイダです。
	BackendOpenAICompatible Backend = "openai-compatible"
	// BackendGemini は Google Gemini API です。
	BackendGemini Backend = "gemini"
)

// ProviderSpec はプロバイダごとの静的な定義です。
// 新しいプロバイダの追加はこのテーブルへの 1 エントリ追加のみで完結します。
type ProviderSpec struct {
	ID           string
	Title        string
	BaseURL      string
	DefaultModel string
	KeyEnv       string
	ModelEnv     string
	Backend      Backend
}

// APIKeySetting はグローバル設定ファイル上の API キーのキー名です。
func (p ProviderSpec) APIKeySetting() string {
	return p.ID + "_api_key"
}

// ModelSetting はグローバル設定ファイル上のモデル名のキー名です。
func (p ProviderSpec) ModelSetting() string {
	return p.ID + "_model"
}

// DefaultProvider はどの設定ソースにも指定がない場合のプロバイダです。
const DefaultProvider = "openai"

var providerTable = []ProviderSpec{
	{
		ID:           "openai",
		Title:        "OpenAI",
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o-mini",
		KeyEnv:       "OPENAI_API_KEY",
		ModelEnv:     "OPENAI_MODEL",
		Backend:      BackendOpenAICompatible,
	},
	{
		ID:           "perplexity",
		Title:        "Perplexity",
		BaseURL:      "https://api.perplexity.ai",
		DefaultModel: "sonar",
		KeyEnv:       "PERPLEXITY_API_KEY",
		ModelEnv:     "PERPLEXITY_MODEL",
		Backend:      BackendOpenAICompatible,
	},
	{
		ID:           "gemini",
		Title:        "Google Gemini",
		DefaultModel: "gemini-2.5-flash",
		KeyEnv:       "GEMINI_API_KEY",
		ModelEnv:     "GEMINI_MODEL",
		Backend:      BackendGemini,
	},
}

// LookupProvider は ID (大文字小文字を区別しない) からプロバイダ定義を取得します。
func LookupProvider(id string) (ProviderSpec, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range providerTable {
		if p.ID == id {
			return p, true
		}
	}
	return ProviderSpec{}, false
}

// ProviderIDs は登録済みプロバイダの ID 一覧です。
func ProviderIDs() []string {
	ids := make([]string, 0, len(providerTable))
	for _, p := range providerTable {
		ids = append(ids, p.ID)
	}
	return ids
}

package adapters

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"git-work-reporter-go/internal/apperr"
	"git-work-reporter-go/internal/config"
)

// 日報の一貫性を優先するため、低い温度に設定
const defaultGeminiTemperature = float32(0.3)

// GeminiAdapter は genai.Client をラップし、Completer インターフェースを実装する具体的な構造体です。
// genai の GenerateContent は失敗時に再試行しないため、1 回の Complete は 1 回の API 呼び出しです。
type GeminiAdapter struct {
	client    *genai.Client
	provider  string
	modelName string
}

// NewGeminiAdapter はGeminiAdapterを初期化します。
// APIキーは環境変数ではなく、解決済みの ProviderConfig から受け取ります。
// httpClient が nil の場合は genai の既定クライアントを使用します。
func NewGeminiAdapter(ctx context.Context, pc config.ProviderConfig, httpClient *http.Client) (*GeminiAdapter, error) {
	if pc.APIKey == "" {
		return nil, apperr.NewMissingCredential(pc.Spec.ID, pc.Spec.KeyEnv)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     pc.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if pc.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: pc.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, &apperr.ProviderError{Provider: pc.Spec.ID, Err: err}
	}

	return &GeminiAdapter{
		client:    client,
		provider:  pc.Spec.ID,
		modelName: pc.Model,
	}, nil
}

// Complete は Completer インターフェースを満たします。
func (ga *GeminiAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := ga.client.Models.GenerateContent(ctx, ga.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(defaultGeminiTemperature),
	})
	if err != nil {
		return "", &apperr.ProviderError{Provider: ga.provider, Err: err}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &apperr.ProviderError{Provider: ga.provider, Err: errors.New("response contained an empty message")}
	}
	return text, nil
}

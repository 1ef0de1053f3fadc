package adapters

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"git-work-reporter-go/internal/apperr"
	"git-work-reporter-go/internal/config"
)

const (
	// レポートの再現性を優先するため、低い温度に設定
	defaultChatTemperature = float32(0.3)
	defaultChatTimeout     = 2 * time.Minute
)

// OpenAIAdapter は OpenAI 互換の Chat Completions API (OpenAI, Perplexity) を呼び出します。
type OpenAIAdapter struct {
	client   *openai.Client
	provider string
	model    string
}

// NewOpenAIAdapter は BaseURL を差し替えた go-openai クライアントを生成します。
// httpClient が nil の場合はタイムアウト付きの既定クライアントを使用します。
func NewOpenAIAdapter(pc config.ProviderConfig, httpClient *http.Client) *OpenAIAdapter {
	cfg := openai.DefaultConfig(pc.APIKey)
	if pc.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(pc.BaseURL, "/")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultChatTimeout}
	}
	cfg.HTTPClient = httpClient

	return &OpenAIAdapter{
		client:   openai.NewClientWithConfig(cfg),
		provider: pc.Spec.ID,
		model:    pc.Model,
	}
}

// Complete は単一の user メッセージで Chat Completion を 1 回だけ実行します。
func (a *OpenAIAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	slog.Debug("Chat Completion を送信します。", "provider", a.provider, "model", a.model, "prompt_bytes", len(prompt))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: defaultChatTemperature,
	})
	if err != nil {
		return "", &apperr.ProviderError{Provider: a.provider, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &apperr.ProviderError{Provider: a.provider, Err: errors.New("response contained no choices")}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &apperr.ProviderError{Provider: a.provider, Err: errors.New("response contained an empty message")}
	}
	slog.Debug("Chat Completion を受信しました。", "provider", a.provider, "total_tokens", resp.Usage.TotalTokens)
	return text, nil
}

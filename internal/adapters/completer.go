package adapters

import (
	"context"
	"fmt"

	"git-work-reporter-go/internal/config"
)

// Completer は AI プロバイダとの通信機能を抽象化します。
// 1 回の Complete は 1 回のプロバイダ呼び出しに対応し、内部でリトライしません。
type Completer interface {
	// Complete は完成されたプロンプトを送信し、生成されたテキストを返します。
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter はプロバイダ定義テーブルの Backend のみを見て実装を選択します。
func NewCompleter(ctx context.Context, pc config.ProviderConfig) (Completer, error) {
	switch pc.Spec.Backend {
	case config.BackendOpenAICompatible:
		return NewOpenAIAdapter(pc, nil), nil
	case config.BackendGemini:
		g, err := NewGeminiAdapter(ctx, pc, nil)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("provider %q has no supported backend (%q)", pc.Spec.ID, pc.Spec.Backend)
	}
}

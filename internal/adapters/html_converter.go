package adapters

import (
	"context"
	"fmt"
	"io"

	"github.com/shouni/go-text-format/pkg/builder"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"
)

// MarkdownConverter は、Markdown コンテンツを完全な HTML ドキュメントに変換する契約です。
type MarkdownConverter interface {
	Convert(ctx context.Context, title string, markdown []byte) (io.Reader, error)
}

// MarkdownConverterAdapter は go-text-format のロジックをラップしたアダプターです。
type MarkdownConverterAdapter struct {
	coreRunner *md2htmlrunner.MarkdownToHtmlRunner
}

// NewMarkdownConverter は go-text-format の Builder から Runner を構築します。
func NewMarkdownConverter() (*MarkdownConverterAdapter, error) {
	md2htmlBuilder, err := builder.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("go-text-format builderの初期化に失敗: %w", err)
	}

	coreRunner, err := md2htmlBuilder.BuildMarkdownToHtmlRunner()
	if err != nil {
		return nil, fmt.Errorf("MarkdownToHtmlRunnerの構築に失敗: %w", err)
	}

	return &MarkdownConverterAdapter{coreRunner: coreRunner}, nil
}

// Convert は MarkdownConverter インターフェースを満たします。
func (a *MarkdownConverterAdapter) Convert(ctx context.Context, title string, markdown []byte) (io.Reader, error) {
	buffer, err := a.coreRunner.ConvertMarkdownToHtml(ctx, title, markdown)
	if err != nil {
		return nil, fmt.Errorf("MarkdownからHTMLへの変換に失敗: %w", err)
	}
	return buffer, nil
}

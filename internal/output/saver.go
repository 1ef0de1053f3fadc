package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git-work-reporter-go/internal/adapters"
	"git-work-reporter-go/internal/apperr"
)

const (
	contentTypeMarkdown = "text/markdown; charset=utf-8"
	contentTypeHTML     = "text/html; charset=utf-8"
)

// Saver はレポートをローカルファイルまたは gs:// URI へ保存します。
// 拡張子が .html / .htm の場合は HTML に変換してから保存します。
type Saver struct {
	newUploader  func(ctx context.Context) (adapters.GCSUploader, error)
	newConverter func() (adapters.MarkdownConverter, error)
}

// SaverOption は Saver の依存関係を差し替えます。
type SaverOption func(*Saver)

// WithUploaderFactory は GCS アップローダーの生成方法を設定します。
func WithUploaderFactory(f func(ctx context.Context) (adapters.GCSUploader, error)) SaverOption {
	return func(s *Saver) { s.newUploader = f }
}

// WithConverterFactory は Markdown→HTML 変換器の生成方法を設定します。
func WithConverterFactory(f func() (adapters.MarkdownConverter, error)) SaverOption {
	return func(s *Saver) { s.newConverter = f }
}

// NewSaver は GCS と go-text-format を使用する Saver を生成します。
// クライアントは実際に必要になるまで生成しません。
func NewSaver(opts ...SaverOption) *Saver {
	s := &Saver{
		newUploader: func(ctx context.Context) (adapters.GCSUploader, error) {
			return adapters.NewGCSUploader(ctx)
		},
		newConverter: func() (adapters.MarkdownConverter, error) {
			return adapters.NewMarkdownConverter()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save は markdown を target へ書き込みます。失敗は IOError として返します。
func (s *Saver) Save(ctx context.Context, target, title, markdown string) error {
	content, contentType, err := s.render(ctx, target, title, markdown)
	if err != nil {
		return &apperr.IOError{Target: target, Err: err}
	}

	if adapters.IsGCSURI(target) {
		err = s.upload(ctx, target, content, contentType)
	} else {
		err = writeFile(target, content)
	}
	if err != nil {
		return &apperr.IOError{Target: target, Err: err}
	}
	slog.Info("レポートを保存しました。", "target", target, "content_type", contentType)
	return nil
}

func (s *Saver) render(ctx context.Context, target, title, markdown string) (io.Reader, string, error) {
	if !isHTMLTarget(target) {
		return strings.NewReader(markdown), contentTypeMarkdown, nil
	}
	conv, err := s.newConverter()
	if err != nil {
		return nil, "", err
	}
	html, err := conv.Convert(ctx, title, []byte(markdown))
	if err != nil {
		return nil, "", err
	}
	return html, contentTypeHTML, nil
}

func (s *Saver) upload(ctx context.Context, target string, content io.Reader, contentType string) error {
	bucketName, objectPath, err := adapters.ParseGCSURI(target)
	if err != nil {
		return err
	}
	uploader, err := s.newUploader(ctx)
	if err != nil {
		return err
	}
	slog.Debug("GCSへアップロード中", "bucket", bucketName, "object", objectPath)
	return uploader.Upload(ctx, bucketName, objectPath, content, contentType)
}

func writeFile(path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func isHTMLTarget(target string) bool {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

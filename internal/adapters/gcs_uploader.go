package adapters

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-remote-io/pkg/factory"
)

// GCSUploader は、GCSへのデータアップロード操作を抽象化するインターフェースです。
type GCSUploader interface {
	// Upload は、指定されたバケットとパスにコンテンツをアップロードします。
	Upload(ctx context.Context, bucketName, objectPath string, content io.Reader, contentType string) error
}

// gcsOutputWriter は go-remote-io の GCS 出力ライターが満たす契約です。
type gcsOutputWriter interface {
	WriteToGCS(ctx context.Context, bucketName, objectPath string, content io.Reader, contentType string) error
}

// RemoteGCSUploader は go-remote-io の GCS 出力ライターを使用する GCSUploader です。
type RemoteGCSUploader struct {
	writer gcsOutputWriter
}

// NewGCSUploader は Application Default Credentials を使用して GCSUploader を作成します。
func NewGCSUploader(ctx context.Context) (*RemoteGCSUploader, error) {
	clientFactory, err := factory.NewClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSクライアントファクトリの初期化に失敗: %w", err)
	}
	writer, err := clientFactory.NewOutputWriter()
	if err != nil {
		return nil, fmt.Errorf("GCS出力ライターの取得に失敗: %w", err)
	}
	return newRemoteGCSUploader(writer), nil
}

func newRemoteGCSUploader(w gcsOutputWriter) *RemoteGCSUploader {
	return &RemoteGCSUploader{writer: w}
}

// Upload は、コンテンツを GCS にアップロードします。
func (u *RemoteGCSUploader) Upload(ctx context.Context, bucketName, objectPath string, content io.Reader, contentType string) error {
	if err := u.writer.WriteToGCS(ctx, bucketName, objectPath, content, contentType); err != nil {
		return fmt.Errorf("GCSへの書き込みに失敗しました (gs://%s/%s): %w", bucketName, objectPath, err)
	}
	return nil
}

// IsGCSURI は target が gs:// スキームか判定します。
func IsGCSURI(target string) bool {
	return strings.HasPrefix(target, "gs://")
}

// ParseGCSURI は gs://bucket/object 形式の URI をバケット名とオブジェクトパスに分解します。
func ParseGCSURI(gcsURI string) (bucketName, objectPath string, err error) {
	if !IsGCSURI(gcsURI) {
		return "", "", fmt.Errorf("invalid GCS URI %q: must start with gs://", gcsURI)
	}
	parts := strings.SplitN(strings.TrimPrefix(gcsURI, "gs://"), "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI %q: bucket and object path are required", gcsURI)
	}
	return parts[0], parts[1], nil
}

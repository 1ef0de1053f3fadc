package adapters

import (
	"github.com/atotto/clipboard"

	"git-work-reporter-go/internal/apperr"
)

// Copier はテキストをシステムのクリップボードへ書き込みます。
type Copier interface {
	Copy(text string) error
}

// SystemClipboard は atotto/clipboard を使用する Copier です。
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return &apperr.ClipboardError{Err: err}
	}
	return nil
}

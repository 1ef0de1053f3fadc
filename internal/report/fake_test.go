package report

import (
	"context"
	"errors"
	"sync"
)

// fakeCompleter は呼び出しを記録し、あらかじめ用意した応答を順に返します。
type fakeCompleter struct {
	mu      sync.Mutex
	replies []string
	failOn  int
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	n := len(f.prompts)
	if f.failOn == n {
		return "", errors.New("upstream exploded")
	}
	if n <= len(f.replies) {
		return f.replies[n-1], nil
	}
	return "ok", nil
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

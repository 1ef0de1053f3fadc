package gitclient

import (
	"strings"
	"time"
)

// UnknownBranch は HEAD がブランチを指していない場合のブランチ名です。
const UnknownBranch = "unknown"

const shortHashLen = 7

// Commit はレポート生成に必要なコミット情報です。
type Commit struct {
	Hash    string
	Subject string
	Author  string
	When    time.Time
}

// ShortHash は 7 文字の短縮ハッシュを返します。
func (c Commit) ShortHash() string {
	if len(c.Hash) <= shortHashLen {
		return c.Hash
	}
	return c.Hash[:shortHashLen]
}

// Line は "<短縮ハッシュ> <件名>" 形式の一行表現です。
func (c Commit) Line() string {
	return c.ShortHash() + " " + c.Subject
}

// CommitBatch は対象日の非マージコミットと現在のブランチ名の組です。
// コミットは git log の順序 (新しいものが先) で並びます。
type CommitBatch struct {
	Branch  string
	Commits []Commit
}

func (b CommitBatch) IsEmpty() bool {
	return len(b.Commits) == 0
}

// Lines は各コミットの一行表現を返します。
func (b CommitBatch) Lines() []string {
	lines := make([]string, 0, len(b.Commits))
	for _, c := range b.Commits {
		lines = append(lines, c.Line())
	}
	return lines
}

// Text は Lines を改行で連結したものです。
func (b CommitBatch) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// subjectOf はコミットメッセージの 1 行目を返します。
func subjectOf(message string) string {
	message = strings.TrimLeft(message, "\r\n")
	if i := strings.IndexAny(message, "\r\n"); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}

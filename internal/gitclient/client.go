package gitclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git-work-reporter-go/internal/apperr"
)

// Service はローカルリポジトリからのコミット抽出を抽象化します。
type Service interface {
	// Extract は window 内にコミットされた非マージコミットと現在のブランチ名を返します。
	Extract(ctx context.Context, repoPath string, window Window) (CommitBatch, error)
}

// Client は go-git を使用して Service を実装します。
type Client struct {
	detectDotGit bool
}

// Option はClientの初期化オプションを設定するための関数です。
type Option func(*Client)

// WithDetectDotGit は親ディレクトリをたどって .git を探すかどうかを設定します。
func WithDetectDotGit(detect bool) Option {
	return func(c *Client) {
		c.detectDotGit = detect
	}
}

// NewClient はClientを初期化します。既定ではサブディレクトリからの実行も許可します。
func NewClient(opts ...Option) *Client {
	c := &Client{detectDotGit: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract はリポジトリを読み取り専用で開き、HEAD からコミット履歴をたどります。
func (c *Client) Extract(ctx context.Context, repoPath string, window Window) (CommitBatch, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return CommitBatch{}, err
	}

	batch := CommitBatch{Branch: currentBranch(repo)}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			slog.Debug("HEAD が存在しないため、空のリポジトリとして扱います。", "path", repoPath)
			return batch, nil
		}
		return CommitBatch{}, &apperr.GitError{Op: "resolve HEAD", Path: repoPath, Err: err}
	}

	iter, err := repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return CommitBatch{}, &apperr.GitError{Op: "log", Path: repoPath, Err: err}
	}
	defer iter.Close()

	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// 時計のずれで子コミットが親より古く記録されることがあるため、打ち切らず全履歴を確認します。
		if commit.NumParents() > 1 || !window.Contains(commit.Committer.When) {
			return nil
		}
		batch.Commits = append(batch.Commits, Commit{
			Hash:    commit.Hash.String(),
			Subject: subjectOf(commit.Message),
			Author:  commit.Author.Name,
			When:    commit.Committer.When,
		})
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return CommitBatch{}, ctxErr
		}
		return CommitBatch{}, &apperr.GitError{Op: "walk history", Path: repoPath, Err: err}
	}

	slog.Debug("コミットを抽出しました。",
		"path", repoPath, "branch", batch.Branch, "window", window.String(), "count", len(batch.Commits))
	return batch, nil
}

func (c *Client) open(repoPath string) (*git.Repository, error) {
	if _, err := os.Stat(repoPath); err != nil {
		return nil, &apperr.GitError{Op: "open repository", Path: repoPath, Err: err}
	}
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: c.detectDotGit})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, &apperr.GitError{
				Op:   "open repository",
				Path: repoPath,
				Err:  fmt.Errorf("not a git repository"),
			}
		}
		return nil, &apperr.GitError{Op: "open repository", Path: repoPath, Err: err}
	}
	return repo, nil
}

// currentBranch は HEAD が指すブランチの短縮名を返します。
// detached HEAD や参照の解決に失敗した場合は UnknownBranch です。
func currentBranch(repo *git.Repository) string {
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		slog.Debug("HEAD の参照を取得できませんでした。", "error", err)
		return UnknownBranch
	}
	if ref.Type() != plumbing.SymbolicReference || !ref.Target().IsBranch() {
		return UnknownBranch
	}
	return ref.Target().Short()
}

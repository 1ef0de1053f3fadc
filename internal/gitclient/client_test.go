package gitclient

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git-work-reporter-go/internal/apperr"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) commit(message string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.n++
	name := filepath.Join(r.dir, "file.txt")
	require.NoError(r.t, os.WriteFile(name, []byte(message+string(rune('a'+r.n))), 0o644))
	_, err := r.wt.Add("file.txt")
	require.NoError(r.t, err)

	sig := &object.Signature{Name: "Dev", Email: "dev@example.com", When: when}
	hash, err := r.wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   parents,
	})
	require.NoError(r.t, err)
	return hash
}

func day(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.Local)
}

func TestDayWindow(t *testing.T) {
	t.Parallel()

	w := DayWindow(day(2024, 3, 15, 13, 45, 0))
	assert.Equal(t, day(2024, 3, 15, 0, 0, 0), w.Start)
	assert.Equal(t, day(2024, 3, 16, 0, 0, 0), w.End)

	assert.True(t, w.Contains(day(2024, 3, 15, 0, 0, 0)))
	assert.True(t, w.Contains(day(2024, 3, 15, 23, 59, 59)))
	assert.False(t, w.Contains(day(2024, 3, 16, 0, 0, 0)))
	assert.False(t, w.Contains(day(2024, 3, 14, 23, 59, 59)))
}

func TestExtract_FiltersByDayAndSkipsMerges(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("chore: yesterday", day(2024, 3, 14, 22, 0, 0))
	first := r.commit("feat: add parser\n\nlong body line", day(2024, 3, 15, 9, 0, 0))
	second := r.commit("fix: handle empty input", day(2024, 3, 15, 23, 59, 59))
	r.commit("Merge branch 'topic'", day(2024, 3, 15, 23, 59, 59), second, first)

	w := DayWindow(day(2024, 3, 15, 0, 0, 0))
	batch, err := NewClient().Extract(context.Background(), r.dir, w)
	require.NoError(t, err)

	assert.Equal(t, "master", batch.Branch)
	require.Len(t, batch.Commits, 2)
	assert.Equal(t, []string{
		second.String()[:7] + " fix: handle empty input",
		first.String()[:7] + " feat: add parser",
	}, batch.Lines())
	assert.Equal(t, "Dev", batch.Commits[0].Author)
	assert.Equal(t, batch.Lines()[0]+"\n"+batch.Lines()[1], batch.Text())
}

func TestExtract_ExcludesNextMidnight(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("late", day(2024, 3, 15, 23, 59, 59))
	r.commit("next day", day(2024, 3, 16, 0, 0, 0))

	batch, err := NewClient().Extract(context.Background(), r.dir, DayWindow(day(2024, 3, 15, 12, 0, 0)))
	require.NoError(t, err)
	require.Len(t, batch.Commits, 1)
	assert.Equal(t, "late", batch.Commits[0].Subject)
}

func TestExtract_NoCommitsInWindow(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("old", day(2024, 1, 1, 10, 0, 0))

	batch, err := NewClient().Extract(context.Background(), r.dir, DayWindow(day(2024, 3, 15, 0, 0, 0)))
	require.NoError(t, err)
	assert.True(t, batch.IsEmpty())
	assert.Empty(t, batch.Text())
}

func TestExtract_ClockSkewKeepsInWindowAncestor(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("chore: earlier day", day(2024, 3, 14, 18, 0, 0))
	inWindow := r.commit("feat: written today", day(2024, 3, 15, 10, 0, 0))
	r.commit("fix: committed with a slow clock", day(2024, 3, 10, 9, 0, 0))

	batch, err := NewClient().Extract(context.Background(), r.dir, DayWindow(day(2024, 3, 15, 0, 0, 0)))
	require.NoError(t, err)
	require.Len(t, batch.Commits, 1)
	assert.Equal(t, inWindow.String(), batch.Commits[0].Hash)
	assert.Equal(t, "feat: written today", batch.Commits[0].Subject)
}

func TestExtract_EmptyRepository(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	batch, err := NewClient().Extract(context.Background(), r.dir, DayWindow(time.Now()))
	require.NoError(t, err)
	assert.True(t, batch.IsEmpty())
}

func TestExtract_DetachedHeadReportsUnknownBranch(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	first := r.commit("one", day(2024, 3, 15, 8, 0, 0))
	r.commit("two", day(2024, 3, 15, 9, 0, 0))
	require.NoError(t, r.wt.Checkout(&git.CheckoutOptions{Hash: first}))

	batch, err := NewClient().Extract(context.Background(), r.dir, DayWindow(day(2024, 3, 15, 0, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, UnknownBranch, batch.Branch)
	require.Len(t, batch.Commits, 1)
	assert.Equal(t, "one", batch.Commits[0].Subject)
}

func TestExtract_FromSubdirectory(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("work", day(2024, 3, 15, 8, 0, 0))
	sub := filepath.Join(r.dir, "pkg", "inner")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	batch, err := NewClient().Extract(context.Background(), sub, DayWindow(day(2024, 3, 15, 0, 0, 0)))
	require.NoError(t, err)
	assert.Len(t, batch.Commits, 1)
}

func TestExtract_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing path",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "does-not-exist") },
		},
		{
			name: "not a repository",
			path: func(t *testing.T) string { return t.TempDir() },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewClient(WithDetectDotGit(false)).Extract(context.Background(), tt.path(t), DayWindow(time.Now()))
			var gitErr *apperr.GitError
			require.ErrorAs(t, err, &gitErr)
			assert.Equal(t, "open repository", gitErr.Op)
		})
	}
}

func TestExtract_CanceledContext(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("work", day(2024, 3, 15, 8, 0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().Extract(ctx, r.dir, DayWindow(day(2024, 3, 15, 0, 0, 0)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubjectOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "feat: x", subjectOf("feat: x\n\nbody"))
	assert.Equal(t, "fix: y", subjectOf("\nfix: y  \r\nmore"))
	assert.Equal(t, "", subjectOf(""))
}

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git-work-reporter-go/internal/config"
)

// executeRoot はグローバルなフラグ状態を初期化してからルートコマンドを実行します。
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	*flags = rootFlags{}
	var out bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_NoCommitsExitsCleanly(t *testing.T) {
	t.Setenv(config.EnvConfigFile, filepath.Join(t.TempDir(), "config.json"))
	repoDir := t.TempDir()
	_, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)

	out, err := executeRoot(t, "--api", "openai", "--key", "sk-test", "--path", repoDir, "--date", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "No commits found for 2024-03-15")
}

func TestRoot_ShowConfigMasksSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(config.EnvConfigFile, path)
	require.NoError(t, config.NewStore(path).Merge(map[string]any{
		"api_provider":   "openai",
		"openai_api_key": "sk-proj-abcdefghijklmnop",
	}))

	out, err := executeRoot(t, "--config")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: "+path)
	assert.Contains(t, out, "openai_api_key = sk-p****mnop")
	assert.NotContains(t, out, "abcdefghijkl")
}

func TestRoot_InvalidDate(t *testing.T) {
	t.Setenv(config.EnvConfigFile, filepath.Join(t.TempDir(), "config.json"))

	_, err := executeRoot(t, "--key", "k", "--date", "2024/03/15")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestOneLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", oneLine(errors.New("a\n  b\tc\n")))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectValues_FindsAncestorFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	content := "WORK_REPORT_API_PROVIDER=perplexity\n" +
		"PERPLEXITY_API_KEY=pplx-from-project\n" +
		"WORK_REPORT_TYPE=summary\n" +
		"UNRELATED=ignored\n"
	projectFile := filepath.Join(root, "a", ".git-work-reporter.env")
	require.NoError(t, os.WriteFile(projectFile, []byte(content), 0o600))

	values, path, err := LoadProjectValues(nested)
	require.NoError(t, err)
	assert.Equal(t, projectFile, path)
	assert.Equal(t, Values{
		KeyAPIProvider:       "perplexity",
		"perplexity_api_key": "pplx-from-project",
		KeyReportType:        "summary",
	}, values)
}

func TestFindProjectFile_PrefersDedicatedName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_MODEL=a\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git-work-reporter.env"), []byte("OPENAI_MODEL=b\n"), 0o600))

	path, err := FindProjectFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".git-work-reporter.env"), path)
}

func TestEnvironmentValues(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"OPENAI_API_KEY":   "sk-env",
		"GEMINI_MODEL":     "gemini-pro",
		"WORK_REPORT_COPY": "true",
		"PERPLEXITY_MODEL": "   ",
		"HOME":             "/home/me",
	}
	values := EnvironmentValues(func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	})
	assert.Equal(t, Values{
		"openai_api_key":   "sk-env",
		"gemini_model":     "gemini-pro",
		KeyCopyToClipboard: "true",
	}, values)
}

func TestValuesGet(t *testing.T) {
	t.Parallel()

	var nilValues Values
	_, ok := nilValues.Get(KeyAPIProvider)
	assert.False(t, ok)

	v := Values{KeyAPIProvider: "  ", KeyReportType: " full "}
	_, ok = v.Get(KeyAPIProvider)
	assert.False(t, ok)
	got, ok := v.Get(KeyReportType)
	assert.True(t, ok)
	assert.Equal(t, "full", got)
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "nope", "config.json"))
	values, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, values)
	assert.False(t, s.Exists())
}

func TestStore_MergePreservesUntouchedKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg", "config.json")
	existing := map[string]any{
		"api_provider":       "perplexity",
		"perplexity_api_key": "pplx-existing-secret-value",
		"custom_note":        "keep me",
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	data, err := json.Marshal(existing)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	s := NewStore(path)
	require.NoError(t, s.Merge(map[string]any{
		"api_provider":   "openai",
		"openai_api_key": "sk-new-secret-value-1234",
	}))

	values, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", values[KeyAPIProvider])
	assert.Equal(t, "sk-new-secret-value-1234", values["openai_api_key"])
	assert.Equal(t, "pplx-existing-secret-value", values["perplexity_api_key"])
	assert.Equal(t, "keep me", values["custom_note"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_RoundTripRedactsSecrets(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "config.json"))
	answers := map[string]any{
		"api_provider":       "openai",
		"openai_api_key":     "sk-proj-abcdefghijklmnop",
		"openai_model":       "gpt-4o",
		"perplexity_api_key": "pplx-0123456789abcdef",
		"report_type":        "summary",
		"copy_to_clipboard":  true,
	}
	require.NoError(t, s.Merge(answers))

	values, err := s.Load()
	require.NoError(t, err)

	wantKeys := make([]string, 0, len(answers))
	for k := range answers {
		wantKeys = append(wantKeys, k)
	}
	assert.ElementsMatch(t, wantKeys, values.Keys())
	assert.Equal(t, "true", values[KeyCopyToClipboard])

	shown := map[string]string{}
	for _, setting := range Redacted(values) {
		shown[setting.Key] = setting.Value
	}
	assert.ElementsMatch(t, wantKeys, mapKeys(shown))
	assert.Equal(t, "sk-p****mnop", shown["openai_api_key"])
	assert.Equal(t, "pplx****cdef", shown["perplexity_api_key"])
	assert.NotContains(t, shown["openai_api_key"], "abcdefghijkl")
	assert.Equal(t, "gpt-4o", shown["openai_model"])
	assert.Equal(t, "summary", shown[KeyReportType])
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "****", MaskSecret(""))
	assert.Equal(t, "****", MaskSecret("short"))
	assert.Equal(t, "****", MaskSecret("exactly12chr"))
	assert.Equal(t, "sk-1****wxyz", MaskSecret("sk-1234567890wxyz"))

	// マルチバイト文字を途中で切らないこと。
	masked := MaskSecret("鍵鍵鍵鍵秘密の値ですよ錠錠錠錠")
	assert.True(t, utf8.ValidString(masked))
	assert.Equal(t, "鍵鍵鍵鍵****錠錠錠錠", masked)
	assert.Equal(t, "****", MaskSecret("鍵鍵鍵鍵鍵鍵鍵鍵鍵鍵鍵鍵"))
}

func TestRedacted_EmptySecretIsStillMasked(t *testing.T) {
	t.Parallel()

	values := Values{"openai_api_key": "", "openai_model": "gpt-4o"}
	shown := map[string]string{}
	for _, setting := range Redacted(values) {
		shown[setting.Key] = setting.Value
	}
	assert.Equal(t, "****", shown["openai_api_key"])
	assert.Equal(t, "gpt-4o", shown["openai_model"])
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

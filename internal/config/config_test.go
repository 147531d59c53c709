package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bpetok.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Nil(t, cfg.AlphabetSymbols())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
vocab:
  target_size: 2048
  alphabet: "abc"
encode:
  sanitize: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 2048, cfg.Vocab.TargetSize)
	require.Equal(t, []string{"a", "b", "c"}, cfg.AlphabetSymbols())
	require.False(t, cfg.Encode.Sanitize)

	// untouched keys keep their defaults
	require.Equal(t, "vocabulary.tokens", cfg.Vocab.Output)
	require.Equal(t, 1<<16, cfg.Encode.CacheSize)
	require.Equal(t, "?", cfg.Encode.Placeholder)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero target":      "vocab:\n  target_size: 0\n",
		"space alphabet":   "vocab:\n  alphabet: \"a b\"\n",
		"long placeholder": "encode:\n  placeholder: \"??\"\n",
		"zero cache":       "encode:\n  cache_size: 0\n",
		"bad yaml":         "vocab: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

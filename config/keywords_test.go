package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeywords(t *testing.T) {
	kw := DefaultKeywords()

	assert.Equal(t, []string{"excelente", "bueno", "recomendado", "increíble", "perfecto"}, kw.Positive)
	assert.Equal(t, []string{"malo", "pésimo", "terrible", "decepcionante", "caro"}, kw.Negative)
}

func TestLoadKeywordsEmptyPath(t *testing.T) {
	kw, err := LoadKeywords("")
	require.NoError(t, err)
	assert.Equal(t, DefaultKeywords(), kw)
}

func TestLoadKeywordsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kw.yaml")
	data := "positive: [\" Limpio \", limpio, amable]\nnegative: [sucio]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	kw, err := LoadKeywords(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"limpio", "amable"}, kw.Positive)
	assert.Equal(t, []string{"sucio"}, kw.Negative)
}

func TestLoadKeywordsRejectsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kw.yaml")
	require.NoError(t, os.WriteFile(path, []byte("positive: [bueno]\nnegative: []\n"), 0644))

	_, err := LoadKeywords(path)
	assert.Error(t, err)
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	_, err := LoadKeywords(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWordList(t *testing.T) {
	list := DefaultWordList()
	assert.Len(t, list.Words, 19)
	assert.Equal(t, "shit", list.Words[0])
	assert.Equal(t, "goddamn", list.Words[18])
	assert.NotEmpty(t, list.Hash())
}

func TestNormalizeWords(t *testing.T) {
	got := NormalizeWords([]string{" Shit ", "fuck", "SHIT", "", "  ", "Piss"})
	assert.Equal(t, []string{"shit", "fuck", "piss"}, got)
}

func TestLoadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	content := `metadata:
  version: "2.1.0"
  description: Radio edit list
  author: Standards
words:
  - Damn
  - hell
  - damn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	list, err := LoadWordList(path)
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", list.Metadata.Version)
	assert.Equal(t, "Standards", list.Metadata.Author)
	assert.Equal(t, []string{"damn", "hell"}, list.Words)
	assert.Len(t, list.Metadata.Hash, 64)
	assert.Equal(t, list.Metadata.Hash, list.Hash())
}

func TestLoadWordListErrors(t *testing.T) {
	_, err := LoadWordList(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read word list file")

	_, err = ParseWordList([]byte("words: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse word list")

	_, err = ParseWordList([]byte("words: ['  ', '']"))
	assert.ErrorContains(t, err, "word list has no words")
}

func TestWordListBuilder(t *testing.T) {
	list := NewWordListBuilder().
		WithMetadata("1.2.0", "Custom", "QA").
		WithDefaults().
		Add("Crap", "shit").
		Remove("GYPSY", "wop").
		Build()

	assert.Equal(t, "1.2.0", list.Metadata.Version)
	assert.Len(t, list.Words, 18)
	assert.Contains(t, list.Words, "crap")
	assert.NotContains(t, list.Words, "gypsy")
	assert.NotContains(t, list.Words, "wop")
	assert.Equal(t, "crap", list.Words[len(list.Words)-1])
}

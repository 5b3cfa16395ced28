package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	lex := Default()
	require.Greater(t, lex.Len(), 100)

	p, ok := lex.Lookup("good")
	require.True(t, ok)
	assert.Equal(t, Positive, p)

	p, ok = lex.Lookup("bad")
	require.True(t, ok)
	assert.Equal(t, Negative, p)

	// Lookup is case-insensitive
	p, ok = lex.Lookup("Good")
	require.True(t, ok)
	assert.Equal(t, Positive, p)

	p, ok = lex.Lookup("GOOD")
	require.True(t, ok)
	assert.Equal(t, Positive, p)

	// Unknown words contribute to neither count
	_, ok = lex.Lookup("the")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	lex := New([]string{"Up", " rally "}, []string{"down"})
	assert.Equal(t, 3, lex.Len())

	p, ok := lex.Lookup("up")
	require.True(t, ok)
	assert.Equal(t, Positive, p)

	p, ok = lex.Lookup("RALLY")
	require.True(t, ok)
	assert.Equal(t, Positive, p)

	p, ok = lex.Lookup("down")
	require.True(t, ok)
	assert.Equal(t, Negative, p)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.csv")
	content := "# comment line\ngood,positive\nBad,Negative\n\nsoar,positive\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lex, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, lex.Len())

	p, ok := lex.Lookup("bad")
	require.True(t, ok)
	assert.Equal(t, Negative, p)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.csv")
	require.NoError(t, os.WriteFile(path, []byte("good positive\n"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_UnknownPolarity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.csv")
	require.NoError(t, os.WriteFile(path, []byte("good,neutral\n"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

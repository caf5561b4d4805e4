package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	lines := Lines("a\r\nb\rc\n", "/p/main.dmx", 4)
	require.Len(t, lines, 5)
	assert.Equal(t, Line{Number: 0, Text: ProgramText, File: "/p/main.dmx"}, lines[0])
	assert.Equal(t, "a", lines[1].Text)
	assert.Equal(t, "b", lines[2].Text)
	assert.Equal(t, 3, lines[3].Number)
	assert.Equal(t, Line{Number: 4, Text: EOFText, File: "/p/main.dmx"}, lines[4])

	empty := Lines("", "/p/empty.dmx", 4)
	require.Len(t, empty, 2)
	assert.Equal(t, 1, empty[1].Number)
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in   string
		size int
		want string
	}{
		{"\tprint", 4, "    print"},
		{"ab\tc", 4, "ab  c"},
		{"abcd\tc", 4, "abcd    c"},
		{"\tx", 0, "\tx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandTabs(tt.in, tt.size))
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.dmx")
	require.NoError(t, os.WriteFile(path, []byte("print \"\xe9\"\n"), 0644))

	lines, err := NewFileLoader(Latin1, 4).Load(path)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "print \"é\"", lines[1].Text)

	_, err = NewFileLoader(Latin1, 4).Load(filepath.Join(dir, "missing.dmx"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.asc")
	require.NoError(t, Save(path, []string{"10 print \"é\"", "20 end"}, Latin1, "\r\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10 print \"\xe9\"\r\n20 end\r\n", string(data))

	err = Save(path, []string{"10 print \"☺\""}, Latin1, "\r\n")
	assert.Error(t, err)
}

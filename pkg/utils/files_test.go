package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFile(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"empty", "", "/games/snake.asc"},
		{"name only", "final", "/games/final.asc"},
		{"with extension", "final.bas", "/games/final.bas"},
		{"relative dir", "out/", "/games/out/snake.asc"},
		{"relative file", "out/final", "/games/out/final.asc"},
		{"absolute", "/tmp/final.txt", "/tmp/final.txt"},
		{"absolute dir", "/tmp/", "/tmp/snake.asc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SaveFile("/games/snake.dmx", tt.output, ".asc"))
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "/games/snake", Stem("/games/snake.dmx"))
	assert.Equal(t, "snake", Stem("snake"))
}

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo("a/b.dmx")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(full))
	assert.Equal(t, filepath.Dir(full), dir)
	assert.Equal(t, "b.dmx", filepath.Base(full))
}

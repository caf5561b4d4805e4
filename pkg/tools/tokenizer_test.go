package tools

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badig/pkg/infolog"
)

type fakeTokenizer struct {
	got  Job
	out  []string
	fail error
}

func (f *fakeTokenizer) Tokenize(_ context.Context, job Job) ([]string, error) {
	f.got = job
	return f.out, f.fail
}

func TestNewJob(t *testing.T) {
	tests := []struct {
		name  string
		width int
		list  string
		want  int
	}{
		{"no list", 0, "", 0},
		{"list", 16, "/games/snake.lmx", 16},
		{"too wide", 64, "/games/snake.lmx", MaxListWidth},
		{"negative", -3, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewJob("/games/snake.asc", ".bmx", tt.width, false, 3)
			assert.Equal(t, "/games/snake.bmx", j.Binary)
			assert.Equal(t, tt.list, j.List)
			assert.Equal(t, tt.want, j.Width)
		})
	}
}

func TestExecArgs(t *testing.T) {
	j := NewJob("/games/snake.asc", ".bmx", 8, false, 2)

	assert.Equal(t,
		[]string{"/games/snake.asc", "/games/snake.bmx", "-vb", "2", "-el", "8"},
		ExecTokenizer{Command: "batoken"}.args(j))

	custom := ExecTokenizer{Command: "tok", Args: []string{"-o", "{binary}", "--list={list}", "{ascii}"}}
	assert.Equal(t,
		[]string{"-o", "/games/snake.bmx", "--list=/games/snake.lmx", "/games/snake.asc"},
		custom.args(j))
}

func TestExecNotConfigured(t *testing.T) {
	_, err := ExecTokenizer{}.Tokenize(context.Background(), Job{})
	assert.EqualError(t, err, "tokenizer not configured")
}

func TestHandoff(t *testing.T) {
	ascii := filepath.Join(t.TempDir(), "snake.asc")
	require.NoError(t, os.WriteFile(ascii, []byte("10 print 1\r\n"), 0644))

	t.Run("keeps ascii", func(t *testing.T) {
		var buf bytes.Buffer
		tk := &fakeTokenizer{out: []string{"Tokenized 1 line"}}
		require.NoError(t, Handoff(context.Background(), tk, NewJob(ascii, ".bmx", 0, false, 3), infolog.New(&buf, infolog.LevelItem)))
		assert.Equal(t, ascii, tk.got.ASCII)
		assert.Contains(t, buf.String(), "Tokenized 1 line")
		assert.FileExists(t, ascii)
	})

	t.Run("failure keeps ascii", func(t *testing.T) {
		tk := &fakeTokenizer{fail: errors.New("boom")}
		err := Handoff(context.Background(), tk, NewJob(ascii, ".bmx", 0, true, 3), infolog.Discard())
		assert.EqualError(t, err, "Tokenizing failed: boom")
		assert.FileExists(t, ascii)
	})

	t.Run("deletes ascii", func(t *testing.T) {
		tk := &fakeTokenizer{}
		require.NoError(t, Handoff(context.Background(), tk, NewJob(ascii, ".bmx", 0, true, 3), infolog.Discard()))
		assert.NoFileExists(t, ascii)
	})
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"one", "two"}, splitLines("one\r\n\ntwo  \n"))
	assert.Nil(t, splitLines(""))
}

package compiler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesReport(t *testing.T) {
	r := LinesReport([]LineInfo{{Number: 10, Source: 0}, {Number: 20, Source: 3}})
	assert.Equal(t, []string{
		"2 lines generated.",
		"(Classic - Dignified)",
		"",
		"10 - Auto generated",
		"20 - 3",
	}, r.Lines)
}

func TestTokenReportSave(t *testing.T) {
	res, err := compileText(t, "msx", "print 1", testOptions())
	require.NoError(t, err)

	r := TokenReport("lexer", testFile, res.Lexed)
	assert.Equal(t, "main.dmx lexer output", r.Lines[0])
	assert.Equal(t, "6 tokens", r.Lines[1])

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "main.dmx lexer output\n")

	out := filepath.Join(t.TempDir(), "main.asc")
	path, err := r.Save(out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(out), "main_lexer.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "6 tokens\n")
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badig/pkg/config"
)

func run(t *testing.T, s *config.Settings, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(s, filepath.Join(t.TempDir(), config.DefaultFile))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeProgram(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestConvert(t *testing.T) {
	input := writeProgram(t, "game.dmx", "{start}\nprint \"hi\"\ngoto {start}\n")
	s := config.Defaults()

	_, err := run(t, &s, input, "--rh", "--vb", "0")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "game.amx"))
	require.NoError(t, err)
	assert.Equal(t, "10 print \"hi\"\r\n20 goto 10\r\n", string(data))
}

func TestConvertOutputAndReports(t *testing.T) {
	input := writeProgram(t, "game.dmx", "score = 1\nprint score\n")
	s := config.Defaults()

	out, err := run(t, &s, input, "final.txt", "--rh", "--var", "--prr", "--vb", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "1 variables assigned")

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "final.txt"))
	require.NoError(t, err)
	assert.Equal(t, "10 zz=1\r\n20 print zz\r\n", string(data))
}

func TestConvertRemtags(t *testing.T) {
	input := writeProgram(t, "game.dmx", "##BB:ARGUMENTS=-ls 100 -lp 5\n##BB:EXPORT_FILE=tagged\nprint 1\nprint 2\n")
	s := config.Defaults()

	_, err := run(t, &s, input, "--rh", "--vb", "0")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "tagged.amx"))
	require.NoError(t, err)
	assert.Equal(t, "100 print 1\r\n105 print 2\r\n", string(data))
}

func TestConvertRemtagHelp(t *testing.T) {
	input := writeProgram(t, "game.dmx", "##BB:HELP=true\nprint 1\n")
	s := config.Defaults()

	out, err := run(t, &s, input, "--vb", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "TK_TOKENIZE")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(input), "game.amx"))
}

func TestConvertFails(t *testing.T) {
	input := writeProgram(t, "game.dmx", "goto {nowhere}\n")
	s := config.Defaults()

	out, err := run(t, &s, input)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Label does not exist: nowhere")
	assert.Contains(t, out, "Conversion stopped.")
}

func TestConvertBadSettings(t *testing.T) {
	input := writeProgram(t, "game.dmx", "print 1\n")
	s := config.Defaults()

	_, err := run(t, &s, input, "--tg", "x", "--vb", "0")
	assert.ErrorIs(t, err, errReported)
}

func TestRemtagsCommand(t *testing.T) {
	s := config.Defaults()
	out, err := run(t, &s, "remtags")
	require.NoError(t, err)
	for _, r := range config.RemtagHelp {
		assert.Contains(t, out, r.Name)
	}
}

func TestInitCommand(t *testing.T) {
	s := config.Defaults()
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	cmd := newRootCmd(&s, path)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--id", "coco"})
	require.NoError(t, cmd.Execute())

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "coco", got.SystemID)
}

func TestReverseCommand(t *testing.T) {
	input := writeProgram(t, "game.asc", "10 PRINT 1\n20 GOTO 10\n")
	s := config.Defaults()

	_, err := run(t, &s, "reverse", input, "--vb", "0")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "game.dmx"))
	require.NoError(t, err)
	assert.Equal(t, "{l_10}\n\tprint 1\n\tgoto {l_10}\n", string(data))
}

func TestReverseCommandFails(t *testing.T) {
	input := writeProgram(t, "game.asc", "print 1\n")
	s := config.Defaults()

	out, err := run(t, &s, "reverse", input, "--kc")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Line number missing")
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badig/pkg/infolog"
	"badig/pkg/source"
)

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Defaults(), s)
	})

	t.Run("yaml over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFile)
		require.NoError(t, os.WriteFile(path, []byte("system_id: coco\nline_step: 5\ntokenizer:\n  list: 8\n"), 0644))

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "coco", s.SystemID)
		assert.Equal(t, 5, s.LineStep)
		assert.Equal(t, 10, s.LineStart)
		assert.Equal(t, 8, s.Tokenizer.List)
	})

	t.Run("environment over yaml", func(t *testing.T) {
		t.Setenv("BADIG_LINE_START", "100")
		t.Setenv("BADIG_STRIP_SPACES", "true")
		s, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 100, s.LineStart)
		assert.True(t, s.StripSpaces)
	})

	t.Run("bad environment", func(t *testing.T) {
		t.Setenv("BADIG_LINE_STEP", "ten")
		_, err := Load("")
		assert.ErrorContains(t, err, "BADIG_LINE_STEP must be a number")
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFile)
		require.NoError(t, os.WriteFile(path, []byte("line_step: [\n"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSaveLoad(t *testing.T) {
	s := Defaults()
	s.CapitaliseAll = true
	s.Tokenizer.Command = "openmsx-tokenize"

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, s.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		msg    string
	}{
		{"defaults", func(*Settings) {}, ""},
		{"upper case choice", func(s *Settings) { s.StripThenGoto = "G" }, ""},
		{"bad print", func(s *Settings) { s.ConvertPrint = "x" }, "ConvertPrint"},
		{"zero step", func(s *Settings) { s.LineStep = 0 }, "LineStep"},
		{"wide list", func(s *Settings) { s.Tokenizer.List = 40 }, "Tokenizer.List"},
		{"verbosity", func(s *Settings) { s.Verbosity = 9 }, "Verbosity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.modify(&s)
			err := s.Validate()
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestBindFlags(t *testing.T) {
	s := Defaults()
	fs := pflag.NewFlagSet("badig", pflag.ContinueOnError)
	BindFlags(fs, &s)

	require.NoError(t, fs.Parse([]string{"--id", "coco", "--ls", "100", "--rh", "--ss", "--tg", "t", "--tk_list", "-v", "1"}))
	assert.Equal(t, "coco", s.SystemID)
	assert.Equal(t, 100, s.LineStart)
	assert.False(t, s.RemHeader)
	assert.True(t, s.StripSpaces)
	assert.Equal(t, "t", s.StripThenGoto)
	assert.Equal(t, 16, s.Tokenizer.List)
	assert.Equal(t, 1, s.Verbosity)

	opts := s.Options()
	assert.Equal(t, 100, opts.LineStart)
	assert.False(t, opts.RemHeader)
	assert.Equal(t, "t", opts.StripThenGoto)
}

func TestEncoding(t *testing.T) {
	s := Defaults()
	assert.Equal(t, source.Latin1, s.Encoding())
	s.Translate = true
	assert.Equal(t, source.UTF8, s.Encoding())
}

func TestRemtags(t *testing.T) {
	text := "##BB:export_file=out/game.asc\n" +
		"print 1\n" +
		"  ##bb:TK_LIST=12\n" +
		"##BB:TK_TOKENIZE=true\n" +
		"##BB:ARGUMENTS=-ls 100 --ss\n" +
		"##BB:NOPE=1\n"
	var buf bytes.Buffer
	tags := ReadRemtags(source.Lines(text, "game.dmx", 4), infolog.New(&buf, infolog.LevelWarning))
	require.Len(t, tags, 4)
	assert.Contains(t, buf.String(), "Remtag not available: NOPE")

	s := Defaults()
	out, err := s.ApplyRemtags(tags)
	require.NoError(t, err)
	assert.Equal(t, "out/game.asc", s.Output)
	assert.Equal(t, 12, s.Tokenizer.List)
	assert.True(t, s.Tokenizer.Tokenize)
	assert.Equal(t, []string{"--ls", "100", "--ss"}, out.Arguments)
	assert.False(t, out.Help)
}

func TestRemtagErrors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{"##BB:TK_DEL_ASCII=yes", "Remtag must be true or false: TK_DEL_ASCII = yes"},
		{"##BB:TK_LIST=wide", "Remtag must be a number: TK_LIST = wide"},
		{"##BB:HELP=maybe", "Remtag must be true or false: HELP = maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tags := ReadRemtags(source.Lines(tt.line, "game.dmx", 4), infolog.Discard())
			s := Defaults()
			_, err := s.ApplyRemtags(tags)
			var e *infolog.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.msg, e.Msg)
			assert.Equal(t, 1, e.Pos.Line)
		})
	}
}

func TestRemtagArguments(t *testing.T) {
	assert.Equal(t, []string{"--tl", "2", "-v", "--ca"}, RemtagArguments("  -tl 2 -v --ca "))
	assert.Empty(t, RemtagArguments(""))
}

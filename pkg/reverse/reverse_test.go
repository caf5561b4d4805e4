package reverse

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badig/pkg/compiler"
	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/source"
)

const testFile = "/p/game.asc"

func convert(t *testing.T, src string, opts Options) ([]string, error) {
	t.Helper()
	c := New(dialect.NewMSX(), infolog.Discard(), opts)
	return c.Convert(source.Lines(src, testFile, 4))
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		want []string
	}{
		{
			name: "labels",
			src: strings.Join([]string{
				`10 CLS`,
				`20 FORI=1TO3:PRINTI:NEXT`,
				`30 IF INKEY$="" THEN 30 ELSE 50`,
				`40 GOTO 10`,
				`50 ON X GOSUB 10,40:END`,
			}, "\n"),
			opts: DefaultOptions(),
			want: []string{
				"{l_10}",
				"\tcls",
				"\tfor i=1 to 3:print i:next",
				"\tif inkey$=\"\" then {@} else {l_50}",
				"",
				"{l_40}",
				"\tgoto {l_10}",
				"",
				"{l_50}",
				"\ton x gosub {l_10},{l_40}:end",
			},
		},
		{
			name: "split and nest",
			src: strings.Join([]string{
				`10 FOR I=1 TO 2:FOR J=1 TO 2:PRINT I*J:NEXT J,I`,
				`20 A=1:IF A THEN PRINT 1:PRINT 2`,
				`30 REM done: ok`,
			}, "\n"),
			opts: Options{Split: true, Indent: "\t"},
			want: []string{
				"\tfor i=1 to 2",
				"\t\tfor j=1 to 2",
				"\t\t\tprint i*j",
				"\tnext j,i",
				"\ta=1",
				"\tif a then print 1:print 2",
				"\trem done: ok",
			},
		},
		{
			name: "keep case",
			src:  `10 PRINTCHR$(65);:GOTO10`,
			opts: Options{KeepCase: true},
			want: []string{"PRINT CHR$(65);:GOTO {@}"},
		},
		{
			name: "literals keep case",
			src:  `10 DATA "A,B", Hello:PRINT "Hi" 'Bye`,
			want: []string{`data "A,B", Hello:print "Hi" 'Bye`},
		},
		{
			name: "numbers",
			src:  `10 A=&HFF+.5:IFA>1E3THEN10`,
			want: []string{"a=&hff+.5:if a>1e3 then {@}"},
		},
		{
			name: "blank lines",
			src:  "\n10 PRINT 1\n\n20 PRINT 2\n",
			want: []string{"print 1", "print 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convert(t, tt.src, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing number", "10 PRINT\nPRINT 2", "(2,1): Line number missing"},
		{"out of order", "20 PRINT\n10 PRINT", "Line number out of order: 10"},
		{"repeated", "10 PRINT\n10 PRINT", "Line number out of order: 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := convert(t, tt.src, DefaultOptions())
			require.Error(t, err)
			var e *infolog.Error
			require.ErrorAs(t, err, &e)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConvertWarnings(t *testing.T) {
	var out bytes.Buffer
	c := New(dialect.NewMSX(), infolog.New(&out, infolog.LevelWarning), Options{})

	got, err := c.Convert(source.Lines("10 GOTO 99\n20\n30 GOTO 20", testFile, 4))
	require.NoError(t, err)
	assert.Equal(t, []string{"goto {l_99}", "{l_20}", "goto {l_20}"}, got)
	assert.Contains(t, out.String(), "Line does not exist: 99")
	assert.Contains(t, out.String(), "Line number without code: 20")
}

func TestConvertCompilesBack(t *testing.T) {
	src := strings.Join([]string{
		`10 CLS`,
		`20 PRINT 1`,
		`30 IF INKEY$="" THEN 30`,
		`40 GOTO 20`,
	}, "\n")
	dignified, err := convert(t, src, DefaultOptions())
	require.NoError(t, err)

	d := dialect.NewMSX()
	lines := source.Lines(strings.Join(dignified, "\n"), "/p/game.dmx", 4)
	res, err := compiler.New(d, nil, infolog.Discard(), compiler.Options{LineStart: 10, LineStep: 10}).
		CompileLines(context.Background(), "/p/game.dmx", lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"10 cls", "20 print 1", `30 if inkey$="" then 30`, "40 goto 20"}, res.Code)
}

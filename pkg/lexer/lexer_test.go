package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/source"
	"badig/pkg/token"
)

type lexed struct {
	kind  token.Kind
	value string
}

func lex(t *testing.T, src string) ([]lexed, error) {
	t.Helper()
	toks, err := New(source.Lines(src, "/p/main.dmx", 4), dialect.NewMSX()).Lex()
	if err != nil {
		return nil, err
	}
	require.Equal(t, token.PROGRAM, toks[0].Kind)
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)

	var out []lexed
	for _, tk := range toks[2 : len(toks)-1] {
		if tk.Kind == token.NEWLINE {
			continue
		}
		out = append(out, lexed{tk.Kind, tk.Value})
	}
	return out, nil
}

func TestLex(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []lexed
	}{
		{
			name: "statement",
			src:  `print "hi";score`,
			want: []lexed{
				{token.C_INSTRUCTION, "print"},
				{token.STRING, `"hi"`},
				{token.C_SYMBOL, ";"},
				{token.IDENTIFIER, "score"},
			},
		},
		{
			name: "longest match",
			src:  "printer=total",
			want: []lexed{
				{token.IDENTIFIER, "printer"},
				{token.C_SYMBOL, "="},
				{token.IDENTIFIER, "total"},
			},
		},
		{
			name: "numbers",
			src:  "a=&hff+1.5e+3",
			want: []lexed{
				{token.IDENTIFIER, "a"},
				{token.C_SYMBOL, "="},
				{token.NUMBER, "&hff"},
				{token.C_SYMBOL, "+"},
				{token.NUMBER, "1.5e+3"},
			},
		},
		{
			name: "dignified",
			src:  "loop{ x+=1 } .fn(a)",
			want: []lexed{
				{token.IDENTIFIER, "loop"},
				{token.D_SYMBOL, "{"},
				{token.IDENTIFIER, "x"},
				{token.C_EXT_SYMBOL, "+="},
				{token.NUMBER, "1"},
				{token.D_SYMBOL, "}"},
				{token.D_FUNC_NAME, ".fn"},
				{token.C_SYMBOL, "("},
				{token.IDENTIFIER, "a"},
				{token.C_SYMBOL, ")"},
			},
		},
		{
			name: "remarks",
			src:  "print 1 ' note\n## gone\nrem kept",
			want: []lexed{
				{token.C_INSTRUCTION, "print"},
				{token.NUMBER, "1"},
				{token.C_REM, "'"},
				{token.REM_TEXT, " note"},
				{token.C_REM, "rem"},
				{token.REM_TEXT, " kept"},
			},
		},
		{
			name: "unterminated string",
			src:  `print "open`,
			want: []lexed{
				{token.C_INSTRUCTION, "print"},
				{token.STRING, `"open`},
			},
		},
		{
			name: "file numbers",
			src:  "print #1,a:get #file",
			want: []lexed{
				{token.C_INSTRUCTION, "print"},
				{token.C_SYMBOL, "#"},
				{token.NUMBER, "1"},
				{token.C_SYMBOL, ","},
				{token.IDENTIFIER, "a"},
				{token.C_SEPARATOR, ":"},
				{token.C_INSTRUCTION, "get"},
				{token.C_SYMBOL, "#"},
				{token.IDENTIFIER, "file"},
			},
		},
		{
			name: "data",
			src:  `data 1, "a,b" ,x: print`,
			want: []lexed{
				{token.C_DATA, "data"},
				{token.DATA_FIELD, "1"},
				{token.C_SYMBOL, ","},
				{token.DATA_FIELD, `"a,b" `},
				{token.C_SYMBOL, ","},
				{token.DATA_FIELD, "x"},
				{token.C_SEPARATOR, ":"},
				{token.C_INSTRUCTION, "print"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lex(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexBlocks(t *testing.T) {
	got, err := lex(t, "''\nfirst\nsecond''\n###\nhidden\n###\nend")
	require.NoError(t, err)
	assert.Equal(t, []lexed{
		{token.C_BLOCK_REM, "''"},
		{token.REM_BLOCK_TEXT, "first"},
		{token.REM_BLOCK_TEXT, "second"},
		{token.REM_BLOCK_END, "''"},
		{token.C_INSTRUCTION, "end"},
	}, got)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"illegal", "print 1 | 2", "Character not recognized in this context: |"},
		{"partial", "a = &", "Token incomplete: &"},
		{"open block", "''\nnever closed", "Block not closed from: 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lex(t, tt.src)
			require.Error(t, err)
			var e *infolog.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.msg, e.Msg)
		})
	}
}

func TestTokens(t *testing.T) {
	desc := dialect.NewMSX().Description()
	toks := Tokens(desc, "locate 1,2:?", token.Position{Line: 7})
	require.Len(t, toks, 6)
	assert.Equal(t, token.C_INSTRUCTION, toks[0].Kind)
	assert.Equal(t, "?", toks[5].Value)
	for _, tk := range toks {
		assert.Equal(t, 7, tk.Pos.Line)
	}
}

func TestTokensPanicsOutsideGrammar(t *testing.T) {
	desc := dialect.NewMSX().Description()
	assert.Panics(t, func() { Tokens(desc, "print |", token.Position{}) })
}

// Every token written back at its column rebuilds the source line.
func TestLexCoversSource(t *testing.T) {
	src := "score = 10 ' start\n" +
		"if score > 5 then print \"big\" else print #1, \"small\"\n" +
		"\tx += 1.5e+3 : y = &hff\n" +
		"{loop} goto {loop}\n" +
		"print a #debug\n" +
		"a$=\"open"

	for _, d := range []dialect.Dialect{dialect.NewMSX(), dialect.NewCoCo()} {
		t.Run(d.Description().Name, func(t *testing.T) {
			lines := source.Lines(src, "/p/main.dmx", 4)
			toks, err := New(lines, d).Lex()
			require.NoError(t, err)

			rebuilt := map[int][]rune{}
			for _, tk := range toks {
				switch tk.Kind {
				case token.PROGRAM, token.NEWLINE, token.EOF:
					continue
				}
				line := rebuilt[tk.Pos.Line]
				for i, r := range []rune(tk.Value) {
					col := tk.Pos.Col - 1 + i
					for len(line) <= col {
						line = append(line, ' ')
					}
					assert.Equal(t, ' ', line[col], "overlap at %s", tk.Pos)
					line[col] = r
				}
				rebuilt[tk.Pos.Line] = line
			}

			for _, l := range lines[1 : len(lines)-1] {
				assert.Equal(t, l.Text, string(rebuilt[l.Number]), "line %d", l.Number)
			}
		})
	}
}

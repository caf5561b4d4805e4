// Package lexer turns dignified source lines into a flat token list.
//
// Each token is the longest run of characters that still matches the merged
// grammar: the candidate grows one character at a time and the last match
// wins. Comments, strings and DATA items are read as raw literals.
package lexer

import (
	"errors"
	"strings"
	"unicode"

	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/source"
	"badig/pkg/token"
)

// lineEnd terminates every line the lexer reads.
const lineEnd = '\r'

// Lexer scans one file. It also serves as the dialect.Scanner for DATA
// lines.
type Lexer struct {
	d     dialect.Dialect
	desc  *dialect.Description
	lines []source.Line

	line int
	col  int
	text []rune

	out []token.Token
}

// New prepares a lexer over lines as returned by a source.Loader.
func New(lines []source.Line, d dialect.Dialect) *Lexer {
	return &Lexer{d: d, desc: d.Description(), lines: lines}
}

// Lex returns PROGRAM, NEWLINE, the tokens of every line each followed by a
// NEWLINE, and EOF.
func (l *Lexer) Lex() ([]token.Token, error) {
	if len(l.lines) < 2 {
		return nil, errors.New("lexer: listing without PROGRAM and EOF lines")
	}

	l.setLine(0)
	start := l.Pos()
	l.out = []token.Token{
		token.New(token.PROGRAM, source.ProgramText, start),
		token.New(token.NEWLINE, string(lineEnd), start),
	}
	l.setLine(1)

	for l.line < len(l.lines)-1 {
		tk := l.scan()
		if tk.Value == "" {
			continue
		}

		switch tk.Kind {
		case token.ILLEGAL:
			return nil, infolog.Errorf(tk.Pos, "Character not recognized in this context: %s", tk.Value)
		case token.C_PARTIAL, token.D_PARTIAL:
			return nil, infolog.Errorf(tk.Pos, "Token incomplete: %s", tk.Value)
		}

		if err := l.handle(tk); err != nil {
			return nil, err
		}
	}

	l.out = append(l.out, token.New(token.EOF, source.EOFText, l.Pos()))
	return l.out, nil
}

func (l *Lexer) handle(tk token.Token) error {
	last := l.out[len(l.out)-1]

	switch {
	case tk.Kind == token.D_TOGGLE_REM && last.Kind != token.NEWLINE &&
		last.Kind != token.D_TOGGLE_REM && last.Kind != token.D_INSTRUCTION:
		sym, name, _ := dialect.SplitToggle(tk.Value)
		kind, ok := l.desc.Grammar.Match(name)
		if !ok {
			kind = token.IDENTIFIER
		}
		l.Emit(token.New(token.C_SYMBOL, sym, tk.Pos), token.New(kind, name, tk.Pos.WithCol(tk.Pos.Col+1)))

	case (tk.Kind == token.C_BLOCK_REM || tk.Kind == token.D_BLOCK_REM) && last.Kind == token.NEWLINE:
		return l.block(tk)

	case tk.Kind == token.D_LINE_REM || tk.Kind == token.D_BLOCK_REM:
		l.restOfLine()

	case tk.Kind == token.C_BLOCK_REM:
		pos := tk.Pos.WithCol(tk.Pos.Col + 1)
		l.Emit(token.New(token.C_REM, l.desc.AltRem, tk.Pos),
			token.New(token.REM_TEXT, l.desc.AltRem+l.restOfLine(), pos))

	case tk.Kind == token.C_REM:
		l.Emit(tk)
		pos := l.Pos()
		if rest := l.restOfLine(); rest != "" {
			l.Emit(token.New(token.REM_TEXT, rest, pos))
		}

	case tk.Kind == token.C_QUOTE:
		l.Emit(l.quoted(tk))

	default:
		res := l.d.Lex(l, tk)
		switch res.Action {
		case dialect.Skip:
		case dialect.Replace:
			l.Emit(res.Token)
		default:
			l.Emit(tk)
		}
	}
	return nil
}

// scan grows a candidate until the next character breaks the match.
func (l *Lexer) scan() token.Token {
	start := l.Pos()
	partial := ""
	kind := token.ILLEGAL
	for {
		next := string(l.Peek())
		k, ok := l.desc.Grammar.Match(partial + next)
		if !ok {
			if partial == "" {
				return token.New(token.ILLEGAL, next, start)
			}
			if kind == token.SPACES {
				return token.New(kind, "", start)
			}
			return token.New(kind, strings.Trim(partial, " "), start)
		}
		partial += string(l.advance())
		kind = k
	}
}

// quoted reads a string up to its closing quote or the end of the line. An
// unterminated string is accepted as is.
func (l *Lexer) quoted(open token.Token) token.Token {
	var b strings.Builder
	b.WriteString(open.Value)
	for l.Peek() != lineEnd {
		r := l.advance()
		b.WriteRune(r)
		if string(r) == l.desc.Quote {
			break
		}
	}
	return token.New(token.STRING, b.String(), open.Pos)
}

// block reads a comment block opened at the start of a line. It ends on the
// first line ending with the opener. Classic blocks keep their lines; dignified
// blocks are dropped.
func (l *Lexer) block(open token.Token) error {
	closer := open.Value
	keep := open.Kind == token.C_BLOCK_REM
	var toks []token.Token

	pos := l.Pos()
	text := l.restOfLine()
	if text == "" {
		if !l.NextLine() {
			return infolog.Errorf(open.Pos, "Block not closed from: %d", open.Pos.Line)
		}
		pos = l.Pos()
		text = l.restOfLine()
	}

	for {
		if body, ok := strings.CutSuffix(text, closer); ok {
			if strings.TrimSpace(body) != "" {
				toks = append(toks, token.New(token.REM_BLOCK_TEXT, body, pos))
			}
			end := l.Pos()
			toks = append(toks, token.New(token.REM_BLOCK_END, closer, end.WithCol(end.Col-len([]rune(closer)))))
			break
		}
		toks = append(toks, token.New(token.REM_BLOCK_TEXT, text, pos))

		if !l.NextLine() {
			return infolog.Errorf(open.Pos, "Block not closed from: %d", open.Pos.Line)
		}
		pos = l.Pos()
		text = l.restOfLine()
	}

	if keep {
		l.Emit(open)
		l.Emit(toks...)
	}
	return nil
}

// restOfLine consumes the current line up to its end marker.
func (l *Lexer) restOfLine() string {
	end := len(l.text) - 1
	if l.col >= end {
		return ""
	}
	rest := string(l.text[l.col:end])
	l.col = end
	return rest
}

func (l *Lexer) setLine(n int) {
	l.line = n
	l.col = 0
	l.text = nil
	if n < len(l.lines) {
		l.text = []rune(strings.TrimRightFunc(l.lines[n].Text, unicode.IsSpace) + string(lineEnd))
	}
}

func (l *Lexer) advance() rune {
	r := l.text[l.col]
	l.col++
	if l.col >= len(l.text) {
		l.setLine(l.line + 1)
	}
	return r
}

// Peek implements dialect.Scanner.
func (l *Lexer) Peek() rune {
	if l.col < len(l.text) {
		return l.text[l.col]
	}
	return lineEnd
}

// Advance implements dialect.Scanner.
func (l *Lexer) Advance() rune { return l.advance() }

// NextLine implements dialect.Scanner. The EOF sentinel line is never
// entered this way.
func (l *Lexer) NextLine() bool {
	if l.line+1 >= len(l.lines)-1 {
		return false
	}
	l.setLine(l.line + 1)
	return true
}

// Pos implements dialect.Scanner.
func (l *Lexer) Pos() token.Position {
	ln := l.lines[min(l.line, len(l.lines)-1)]
	text := strings.TrimRightFunc(ln.Text, unicode.IsSpace)
	return token.NewPosition(ln.Number, l.col+1, text, ln.File, len(l.lines))
}

// Emit implements dialect.Scanner.
func (l *Lexer) Emit(toks ...token.Token) {
	l.out = append(l.out, toks...)
}

// Package reverse turns a classic line-numbered listing into dignified
// source: line numbers go away and every branch target becomes a label.
package reverse

import (
	"strconv"
	"strings"
	"unicode"

	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/source"
	"badig/pkg/token"
)

// LabelPrefix starts the name of every generated label.
const LabelPrefix = "l_"

// longest keyword any dialect knows, in characters.
const maxKeyword = 8

// Options shape the dignified output.
type Options struct {
	// KeepCase leaves keywords and variables as typed instead of lowercasing.
	KeepCase bool
	// Split puts each statement of a line on its own line. Statements after
	// an IF stay together.
	Split bool
	// BlankLine writes an empty line before every label but the first.
	BlankLine bool
	// Indent prefixes code lines; FOR loops nest one more level.
	Indent string
}

// DefaultOptions mirror what a dignified program usually looks like.
func DefaultOptions() Options {
	return Options{BlankLine: true, Indent: "\t"}
}

// Converter converts listings of one dialect.
type Converter struct {
	desc *dialect.Description
	log  *infolog.Logger
	opts Options
}

// New returns a converter for d.
func New(d dialect.Dialect, log *infolog.Logger, opts Options) *Converter {
	return &Converter{desc: d.Description(), log: log, opts: opts}
}

type piece struct {
	kind token.Kind
	text string
	// gap is set when blanks preceded the piece in the listing.
	gap bool
	// target is the line a LABEL_JUMP stands for.
	target int
}

type numbered struct {
	number int
	pos    token.Position
	code   []piece
}

// Convert reads lines as returned by a source.Loader and returns the
// dignified program. Lines must carry ascending line numbers.
func (c *Converter) Convert(lines []source.Line) ([]string, error) {
	var prog []numbered
	exists := map[int]bool{}
	targets := map[int]bool{}
	last := -1

	if len(lines) < 2 {
		return nil, infolog.Failf("Listing without PROGRAM and EOF lines")
	}
	for _, l := range lines[1 : len(lines)-1] {
		pos := token.NewPosition(l.Number, 1, l.Text, l.File, len(l.Text))
		text := strings.TrimSpace(l.Text)
		if text == "" {
			continue
		}

		digits := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsDigit(r) })
		if digits < 0 {
			digits = len(text)
		}
		if digits == 0 {
			return nil, infolog.Errorf(pos, "Line number missing")
		}
		n, err := strconv.Atoi(text[:digits])
		if err != nil {
			return nil, infolog.Errorf(pos, "Line number not valid: %s", text[:digits])
		}
		if n <= last {
			return nil, infolog.Errorf(pos, "Line number out of order: %d", n)
		}
		last = n
		exists[n] = true

		code := c.scan(text[digits:])
		if len(code) == 0 {
			c.log.Warning(pos, "Line number without code: %d", n)
		}
		code = c.labelTargets(code, n, targets)
		prog = append(prog, numbered{number: n, pos: pos, code: code})
	}

	for _, l := range prog {
		for _, p := range l.code {
			if p.kind == token.LABEL_JUMP && !exists[p.target] {
				c.log.Warning(l.pos, "Line does not exist: %d", p.target)
			}
		}
	}

	return c.assemble(prog, targets), nil
}

// labelTargets replaces the line numbers following a branch keyword with
// labels and records them in targets.
func (c *Converter) labelTargets(code []piece, line int, targets map[int]bool) []piece {
	branch := false
	for i, p := range code {
		switch {
		case p.kind == token.C_JUMP:
			branch = true
		case branch && p.kind == token.NUMBER:
			n, err := strconv.Atoi(p.text)
			if err != nil {
				branch = false
				continue
			}
			name := LabelPrefix + strconv.Itoa(n)
			if n == line {
				name = dialect.LabelSameLine
			} else {
				targets[n] = true
			}
			code[i] = piece{kind: token.LABEL_JUMP, text: dialect.LabelOpen + name + dialect.LabelClose, gap: p.gap, target: n}
		case branch && p.text == c.desc.DataSeparator:
		default:
			branch = false
		}
	}
	return code
}

func (c *Converter) assemble(prog []numbered, targets map[int]bool) []string {
	var out []string
	depth := 0
	for _, l := range prog {
		if targets[l.number] {
			if c.opts.BlankLine && len(out) > 0 {
				out = append(out, "")
			}
			out = append(out, dialect.LabelOpen+LabelPrefix+strconv.Itoa(l.number)+dialect.LabelClose)
		}
		for _, stmt := range c.statements(l.code) {
			if len(stmt) == 0 {
				continue
			}
			opens, closes := loops(stmt)
			if closes > 0 && keyword(stmt[0], "NEXT") {
				depth = max(0, depth-closes)
				closes = 0
			}
			indent := ""
			if c.opts.Indent != "" {
				indent = strings.Repeat(c.opts.Indent, depth+1)
			}
			out = append(out, indent+c.render(stmt))
			depth = max(0, depth+opens-closes)
		}
	}
	return out
}

// statements splits code at the statement separators before any IF.
func (c *Converter) statements(code []piece) [][]piece {
	if !c.opts.Split {
		return [][]piece{code}
	}
	var stmts [][]piece
	var cur []piece
	for i, p := range code {
		if keyword(p, "IF") {
			return append(stmts, append(cur, code[i:]...))
		}
		if p.kind == token.C_SEPARATOR {
			stmts = append(stmts, cur)
			cur = nil
			continue
		}
		cur = append(cur, p)
	}
	return append(stmts, cur)
}

// loops counts the FOR loops a statement list opens and the variables its
// NEXT statements close (a bare NEXT closes one).
func loops(code []piece) (opens, closes int) {
	for i, p := range code {
		switch {
		case keyword(p, "FOR"):
			opens++
		case keyword(p, "NEXT"):
			vars := 1
			for _, q := range code[i+1:] {
				if q.kind == token.C_SEPARATOR || q.kind == token.C_REM {
					break
				}
				if q.text == "," {
					vars++
				}
			}
			closes += vars
		}
	}
	return opens, closes
}

func keyword(p piece, word string) bool {
	return p.kind == token.C_INSTRUCTION && strings.EqualFold(p.text, word)
}

func isKeyword(k token.Kind) bool {
	switch k {
	case token.C_INSTRUCTION, token.C_JUMP, token.C_FUNCTION, token.C_OPERATOR, token.C_DATA, token.C_REM:
		return true
	}
	return false
}

func (c *Converter) render(code []piece) string {
	var b strings.Builder
	var prev *piece
	for i := range code {
		p := code[i]
		text := p.text
		if !c.opts.KeepCase && p.kind != token.STRING && p.kind != token.REM_TEXT && p.kind != token.DATA_FIELD {
			text = strings.ToLower(text)
		}
		if prev != nil && c.spaced(*prev, p, b.String(), text) {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		prev = &code[i]
	}
	return b.String()
}

// spaced decides the blank between two rendered pieces. Blanks typed in the
// listing survive as one; keywords are kept apart from names and numbers so
// the dignified lexer reads them back.
func (c *Converter) spaced(prev, p piece, before, text string) bool {
	if p.kind == token.REM_TEXT {
		return false
	}
	if prev.kind == token.C_SEPARATOR || p.kind == token.C_SEPARATOR ||
		prev.text == c.desc.DataSeparator || p.text == c.desc.DataSeparator {
		return false
	}
	if p.gap {
		return true
	}
	last := rune(before[len(before)-1])
	first := rune(text[0])
	word := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(`{}"$`, r)
	}
	if isKeyword(p.kind) && (word(last) || last == ')') {
		return true
	}
	return isKeyword(prev.kind) && word(first)
}

// scan splits the code of a classic line the way the interpreter does:
// keywords are recognized anywhere, even inside what reads as a name.
func (c *Converter) scan(text string) []piece {
	var code []piece
	gap := false
	for text != "" {
		r := rune(text[0])
		if r == ' ' || r == '\t' {
			gap = true
			text = text[1:]
			continue
		}

		var p piece
		var n int
		upper := strings.ToUpper(text)
		switch {
		case r == '"':
			n = strings.Index(text[1:], `"`) + 2
			if n == 1 {
				n = len(text)
			}
			p = piece{kind: token.STRING, text: text[:n]}
		case strings.HasPrefix(text, c.desc.AltRem) || strings.HasPrefix(upper, "REM"):
			mark := len(c.desc.AltRem)
			if !strings.HasPrefix(text, c.desc.AltRem) {
				mark = len("REM")
			}
			code = append(code, piece{kind: token.C_REM, text: text[:mark], gap: gap})
			if rest := text[mark:]; rest != "" {
				code = append(code, piece{kind: token.REM_TEXT, text: rest})
			}
			return code
		case strings.HasPrefix(upper, "DATA"):
			code = append(code, piece{kind: token.C_DATA, text: text[:4], gap: gap})
			n = dataEnd(text, c.desc.Separator)
			if rest := strings.TrimSpace(text[4:n]); rest != "" {
				code = append(code, piece{kind: token.DATA_FIELD, text: rest, gap: true})
			}
			text, gap = text[n:], false
			continue
		default:
			p, n = c.word(text)
		}
		p.gap = gap
		code = append(code, p)
		text, gap = text[n:], false
	}
	return code
}

// dataEnd returns where a DATA statement starting text ends.
func dataEnd(text, sep string) int {
	quoted := false
	for i, r := range text {
		switch {
		case r == '"':
			quoted = !quoted
		case !quoted && string(r) == sep:
			return i
		}
	}
	return len(text)
}

// word reads a keyword, number, name or symbol at the start of text.
func (c *Converter) word(text string) (piece, int) {
	if n := c.keywordAt(text); n > 0 {
		kind, ok := c.desc.Grammar.Match(text[:n])
		if !ok {
			kind = token.C_INSTRUCTION
		}
		return piece{kind: kind, text: text[:n]}, n
	}

	b := text[0]
	if isDigit(b) || b == '.' || b == '&' {
		n := 0
		for i := 1; i <= len(text); i++ {
			if i > 1 && !isDigit(text[i-1]) && c.keywordAt(text[i-1:]) > 0 {
				break
			}
			kind, ok := c.desc.Grammar.Match(text[:i])
			if !ok || kind != token.NUMBER && kind != token.C_PARTIAL && kind != token.D_PARTIAL {
				break
			}
			if kind == token.NUMBER {
				n = i
			}
		}
		if n > 0 {
			return piece{kind: token.NUMBER, text: text[:n]}, n
		}
	}

	if isAlnum(b) {
		n := 1
		for n < len(text) && isAlnum(text[n]) && c.keywordAt(text[n:]) == 0 {
			n++
		}
		if n < len(text) && strings.ContainsRune("$%!#", rune(text[n])) {
			n++
		}
		return piece{kind: token.IDENTIFIER, text: text[:n]}, n
	}

	_, size := firstRune(text)
	if text[:size] == c.desc.Separator {
		return piece{kind: token.C_SEPARATOR, text: text[:size]}, size
	}
	return piece{kind: token.C_SYMBOL, text: text[:size]}, size
}

// keywordAt returns the length of the longest keyword starting text.
func (c *Converter) keywordAt(text string) int {
	best := 0
	for i := 1; i <= min(len(text), maxKeyword); i++ {
		if c.desc.IsReserved(text[:i]) {
			best = i
		}
	}
	return best
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || isDigit(b)
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

package compiler

import (
	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/lexer"
	"badig/pkg/token"
)

// function is a FUNC definition: one token run per argument, per return
// variable and per argument default.
type function struct {
	args     [][]token.Token
	rets     [][]token.Token
	defaults [][]token.Token
}

// parser walks one token list per pass. Each pass reads in and writes out;
// the next pass reads what the previous one wrote.
type parser struct {
	ctx  *Context
	desc *dialect.Description
	file string

	in  []token.Token
	idx int
	tk  token.Token
	out []token.Token

	defines   map[string]dialect.Macro
	keeps     map[string]bool
	functions map[string]function

	inFunc       *token.Token
	funcArgs     [][]token.Token
	funcDefaults [][]token.Token

	loops []token.Token

	labelReport map[int][]string
	lines       []LineInfo
}

func newParser(ctx *Context, file string, lexed []token.Token) *parser {
	p := &parser{
		ctx:         ctx,
		desc:        ctx.desc,
		file:        file,
		defines:     map[string]dialect.Macro{},
		keeps:       map[string]bool{},
		functions:   map[string]function{},
		labelReport: map[int][]string{},
	}
	p.reset(lexed)

	for _, m := range ctx.d.DefaultDefines(p.Tokens) {
		p.defines[m.Name] = m
	}
	return p
}

// reset starts a new pass over in.
func (p *parser) reset(in []token.Token) {
	p.in = in
	p.idx = 0
	p.tk = in[0]
	p.out = []token.Token{p.tk}
}

// restart starts a new pass over the output of the last one.
func (p *parser) restart() { p.reset(p.out) }

// Tok implements dialect.Stream.
func (p *parser) Tok() token.Token { return p.tk }

// Next implements dialect.Stream. It stops on the last token.
func (p *parser) Next() token.Token {
	if p.idx+1 < len(p.in) {
		p.idx++
	}
	p.tk = p.in[p.idx]
	return p.tk
}

func (p *parser) prev() token.Token {
	if p.idx-1 > 0 {
		p.idx--
	}
	p.tk = p.in[p.idx]
	return p.tk
}

// Peek implements dialect.Stream.
func (p *parser) Peek(n int) token.Token {
	i := min(max(p.idx+n, 0), len(p.in)-1)
	return p.in[i]
}

// Last implements dialect.Stream.
func (p *parser) Last(n int) token.Token {
	if n < 1 || n > len(p.out) {
		return token.Token{}
	}
	return p.out[len(p.out)-n]
}

// Emit implements dialect.Stream.
func (p *parser) Emit(toks ...token.Token) { p.out = append(p.out, toks...) }

// Tokens implements dialect.Stream.
func (p *parser) Tokens(text string) []token.Token {
	return lexer.Tokens(p.desc, text, p.tk.Pos)
}

func (p *parser) pop() token.Token {
	t := p.out[len(p.out)-1]
	p.out = p.out[:len(p.out)-1]
	return t
}

func (p *parser) errorf(tk token.Token, format string, args ...any) error {
	return infolog.Errorf(tk.Pos, format, args...)
}

func (p *parser) warnf(tk token.Token, format string, args ...any) {
	p.ctx.log.Warning(tk.Pos, format, args...)
}

// inBracket reads "open content close" starting at the current token and
// leaves the cursor after close. blank is set for "open close".
func (p *parser) inBracket(open, close string) (content token.Token, blank bool, err error) {
	if p.tk.Value != open {
		return content, false, p.errorf(p.tk, "Expecting: %s", open)
	}
	content = p.Next()
	if content.Value == close {
		p.Next()
		return content, true, nil
	}
	if p.Next().Value != close {
		return content, false, p.errorf(p.tk, `Closing "%s" not found.`, close)
	}
	p.Next()
	return content, false, nil
}

// sameTokens compares two token runs by value.
func sameTokens(a, b []token.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

package compiler

import (
	"context"
	"path/filepath"
	"time"

	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/lexer"
	"badig/pkg/source"
	"badig/pkg/token"
)

// Compiler converts dignified programs for one dialect.
type Compiler struct {
	d      dialect.Dialect
	loader source.Loader
	log    *infolog.Logger
	opts   Options
}

// Result is a finished conversion.
type Result struct {
	// Code holds the classic lines without terminators.
	Code   []string
	Lexed  []token.Token
	Parsed []token.Token
	// Vars maps "long@file" to the short name given.
	Vars  map[string]string
	Lines []LineInfo
}

func New(d dialect.Dialect, loader source.Loader, log *infolog.Logger, opts Options) *Compiler {
	if log == nil {
		log = infolog.Discard()
	}
	return &Compiler{d: d, loader: loader, log: log, opts: opts}
}

// Compile loads path and converts it.
func (c *Compiler) Compile(ctx context.Context, path string) (*Result, error) {
	c.log.Main("Basic Dignified: %s", c.d.Description().Name)
	c.log.Main("Converting: %s", filepath.Base(path))
	c.log.Sub("Loading file: %s", path)

	lines, err := c.loader.Load(path)
	if err != nil {
		return nil, err
	}
	return c.CompileLines(ctx, path, lines)
}

// CompileLines converts already loaded lines. Includes are still read
// through the loader, relative to path.
func (c *Compiler) CompileLines(ctx context.Context, path string, lines []source.Line) (*Result, error) {
	t0 := time.Now()
	c.log.Item("Lexing.")
	lexed, err := lexer.New(lines, c.d).Lex()
	if err != nil {
		return nil, err
	}
	tl := time.Since(t0)
	c.log.Item("%d tokens created in %.4fs.", len(lexed), tl.Seconds())

	t0 = time.Now()
	c.log.Item("Parsing.")
	p := newParser(newContext(c.d, c.loader, c.log, c.opts, path), path, lexed)
	if _, err := p.front(ctx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.pass4(); err != nil {
		return nil, err
	}
	if err := p.pass5(); err != nil {
		return nil, err
	}
	parsed := append([]token.Token{}, p.out...)
	tp := time.Since(t0)
	c.log.Item("%d tokens created in %.4fs.", len(parsed), tp.Seconds())

	t0 = time.Now()
	code, err := p.generate()
	if err != nil {
		return nil, err
	}
	tg := time.Since(t0)
	c.log.Item("%d lines created in %.4fs.", len(code), tg.Seconds())
	c.log.Item("Total: %.4fs.", (tl + tp + tg).Seconds())

	var info []LineInfo
	if len(p.lines) > 1 {
		info = p.lines[1:]
	}
	return &Result{
		Code:   code,
		Lexed:  lexed,
		Parsed: parsed,
		Vars:   p.ctx.vars.Declares(),
		Lines:  info,
	}, nil
}

// front runs the passes every file goes through, included or not.
func (p *parser) front(ctx context.Context) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.pass1(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.pass2(); err != nil {
		return nil, err
	}
	if err := p.pass3(ctx); err != nil {
		return nil, err
	}
	return p.out, nil
}

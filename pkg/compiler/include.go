package compiler

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"badig/pkg/lexer"
	"badig/pkg/source"
	"badig/pkg/token"
)

// include reads `INCLUDE "file"`, converts the file up to pass 3 with the
// shared naming state and splices its tokens in place.
func (p *parser) include(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inc := p.tk
	name := p.Next()
	file := strings.TrimSpace(strings.Trim(name.Value, p.desc.Quote))
	if name.Kind != token.STRING || file == "" {
		return p.errorf(inc, "Include error: %s", name.Value)
	}

	path, lines, err := p.loadInclude(file)
	if errors.Is(err, errCircular) {
		return p.errorf(name, "circular include detected: %s", file)
	}
	if err != nil {
		return p.errorf(name, "%v", err)
	}
	p.ctx.log.Sub("Including: %s", filepath.Base(path))

	lexed, err := lexer.New(lines, p.ctx.d).Lex()
	if err != nil {
		return err
	}
	child := newParser(p.ctx.enter(path), path, lexed)
	parsed, err := child.front(ctx)
	if err != nil {
		return err
	}

	// Drop PROGRAM and its newline, EOF and the closing newline if any.
	body := parsed[min(2, len(parsed)) : len(parsed)-1]
	if n := len(body); n > 0 && body[n-1].Kind == token.NEWLINE {
		body = body[:n-1]
	}
	p.Emit(body...)
	return nil
}

var errCircular = errors.New("circular include")

// loadInclude looks for file next to the including file first and then next
// to the main file. A file already being included is never read again.
func (p *parser) loadInclude(file string) (string, []source.Line, error) {
	candidates := []string{file}
	if !filepath.IsAbs(file) {
		candidates = []string{filepath.Join(filepath.Dir(p.file), file)}
		if mainDir := filepath.Dir(p.ctx.main); mainDir != filepath.Dir(p.file) {
			candidates = append(candidates, filepath.Join(mainDir, file))
		}
	}

	var err error
	for _, path := range candidates {
		if p.ctx.including(path) {
			return path, nil, errCircular
		}
		var lines []source.Line
		lines, err = p.ctx.loader.Load(path)
		if err == nil {
			return path, lines, nil
		}
		if !errors.Is(err, source.ErrNotFound) {
			return path, nil, err
		}
	}
	return candidates[0], nil, err
}

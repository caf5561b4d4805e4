package compiler

import (
	"context"
	"strings"

	"badig/pkg/token"
)

// pass3 splices includes, registers hard variables, unwraps rem blocks and
// tidies newlines, separators and strings.
func (p *parser) pass3(ctx context.Context) error {
	p.ctx.log.Item("Pass 3.")
	p.restart()
	quote := p.desc.Quote
	n := len(p.in)

	for {
		p.Next()
		if p.tk.Kind == token.EOF {
			p.Emit(p.tk)
			return nil
		}

		if p.tk.Kind == token.D_INSTRUCTION && p.tk.Is("INCLUDE") {
			if err := p.include(ctx); err != nil {
				return err
			}
			continue
		}

		if p.tk.Kind == token.IDENTIFIER {
			if err := p.hardVariable(p.tk); err != nil {
				return err
			}
		}

		if p.tk.Kind == token.C_BLOCK_REM {
			p.Next()
			for p.tk.Kind != token.REM_BLOCK_END && p.tk.Kind != token.EOF {
				p.Emit(p.Tokens(p.desc.AltRem)...)
				p.Emit(p.tk.WithKind(token.REM_TEXT))
				p.Emit(token.New(token.NEWLINE, "\r", p.tk.Pos.WithCol(len([]rune(p.tk.Value)))))
				p.Next()
			}
			continue
		}

		if p.tk.Kind == token.NEWLINE && p.Last(1).Kind == token.NEWLINE {
			continue
		}

		last := p.Last(1)
		switch {
		case p.tk.Kind == token.C_SEPARATOR && last.Kind == token.C_SEPARATOR:
			continue

		case p.tk.Kind == token.NEWLINE && last.Kind == token.D_SEPARATOR:
			p.pop()
			if p.idx < n-3 {
				continue
			}

		case p.tk.Kind == token.NEWLINE && last.Kind == token.C_SEPARATOR:
			if p.idx < n-3 {
				continue
			}

		case p.tk.Kind == token.C_SEPARATOR && last.Kind == token.NEWLINE && p.idx > 3:
			p.pop()

		case p.tk.Kind == token.NEWLINE && (last.Kind == token.LABEL_LINE || last.Kind == token.FUNC_DEF):
			continue

		case p.tk.Kind == token.STRING && last.Kind == token.STRING:
			p.tk = p.tk.WithValue(strings.TrimRight(last.Value, quote) + strings.TrimLeft(p.tk.Value, quote))
			p.pop()

		case p.tk.Kind == token.STRING && last.Kind == token.NEWLINE && p.Last(2).Kind == token.STRING:
			p.tk = p.tk.WithValue(strings.TrimRight(p.Last(2).Value, quote) + strings.TrimLeft(p.tk.Value, quote))
			p.pop()
			p.pop()
		}

		p.Emit(p.tk)
	}
}

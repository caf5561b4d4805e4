package compiler

import (
	"strings"

	"badig/pkg/token"
)

// pass5 applies the classic touches: booleans, compound assignments, PRINT
// style, THEN/GOTO stripping, charset translation and capitals.
func (p *parser) pass5() error {
	p.ctx.log.Item("Pass 5.")
	p.restart()

	opts := p.ctx.opts
	upper := opts.CapitaliseAll || p.desc.Uppercase
	strip := strings.ToLower(opts.StripThenGoto)

	for {
		p.Next()
		if p.tk.Kind == token.EOF {
			p.Emit(p.tk)
			return nil
		}

		tk := p.tk
		switch {
		case tk.Kind == token.C_INSTRUCTION && opts.ConvertPrint != "" &&
			(tk.Value == p.desc.PrintAlt || tk.Is(p.desc.PrintIns)):
			if opts.ConvertPrint == p.desc.PrintAlt {
				p.tk = tk.WithValue(p.desc.PrintAlt)
			} else {
				p.tk = tk.WithValue(p.desc.PrintIns)
			}

		case strip == "t" && tk.Kind == token.C_JUMP && tk.Is("THEN") && p.Peek(1).Is("GOTO"):
			continue

		case strip == "g" && tk.Kind == token.C_JUMP && tk.Is("GOTO") &&
			(p.Last(1).Is("THEN") || p.Last(1).Is("ELSE")):
			continue

		case tk.Kind == token.C_EXT_SYMBOL:
			operand := p.Last(1)
			if operand.Kind != token.IDENTIFIER {
				return p.errorf(tk, "Compound assignment needs a plain variable: %s", tk.Value)
			}
			op := tk.Value[:1]
			p.Emit(p.Tokens(p.desc.Equal)...)
			p.Emit(operand)
			p.Emit(p.Tokens(op)...)
			if strings.Count(tk.Value, op) == len(tk.Value) {
				p.Emit(p.Tokens("1")...)
			}
			continue

		case tk.Kind == token.D_OPERATOR && tk.Is("FALSE"):
			p.Emit(p.Tokens("0")...)
			continue

		case tk.Kind == token.D_OPERATOR && tk.Is("TRUE"):
			p.Emit(p.Tokens("-1")...)
			continue

		case opts.Translate && tk.Kind.IsLiteral():
			p.Emit(tk.WithValue(p.desc.Translate(tk.Value)))
			continue
		}

		if upper && !p.tk.Kind.IsLiteral() {
			p.tk = p.tk.WithValue(p.tk.Upper())
		}
		p.Emit(p.tk)
	}
}

package compiler

import (
	"badig/pkg/dialect"
	"badig/pkg/token"
)

// defineLine reads a DEFINE line. Two forms are accepted:
//
//	DEFINE [name][body [default]], [name][body]
//	DEFINE [name](param) body to the end of the line
//
// In the first form a nested bracket marks where an argument goes and holds
// its default. The whole line, newline included, is consumed.
func (p *parser) defineLine() error {
	for {
		p.Next()
		name, blank, err := p.inBracket(dialect.DefineOpen, dialect.DefineClose)
		if err != nil {
			return err
		}
		if blank {
			return p.errorf(p.tk, "Define definition blank.")
		}
		if !dialect.IsIdentifier(name.Value) {
			return p.errorf(name, "Invalid define name: %s", name.Value)
		}
		if _, ok := p.defines[name.Lower()]; ok {
			return p.errorf(name, "Define name duplicated: %s", name.Value)
		}

		if p.tk.Kind == token.C_SYMBOL && p.tk.Value == dialect.DefineArgOpen {
			m, err := p.paramDefine(name)
			if err != nil {
				return err
			}
			p.defines[m.Name] = m
			return nil
		}

		body, def, err := p.defineBody()
		if err != nil {
			return err
		}
		p.defines[name.Lower()] = dialect.Macro{Name: name.Lower(), Body: body, Default: def}

		tk := p.Next()
		if tk.Value != dialect.DefineSep {
			if tk.Kind != token.NEWLINE && tk.Kind != token.EOF {
				return p.errorf(tk, "Expecting: %s", dialect.DefineSep)
			}
			return nil
		}
	}
}

// defineBody reads "[tokens [default] tokens]" from the cursor and stops on
// the closing bracket.
func (p *parser) defineBody() (body, def []token.Token, err error) {
	if p.tk.Value != dialect.DefineOpen {
		return nil, nil, p.errorf(p.tk, "Expecting: %s", dialect.DefineOpen)
	}

	slot := false
	for {
		t := p.Next()
		switch {
		case t.Kind == token.NEWLINE || t.Kind == token.EOF:
			return nil, nil, p.errorf(t, "Unbalanced %s%s", dialect.DefineOpen, dialect.DefineClose)

		case t.Value == dialect.DefineOpen:
			var inner []token.Token
			for {
				u := p.Next()
				if u.Kind == token.NEWLINE || u.Kind == token.EOF {
					return nil, nil, p.errorf(u, "Unbalanced %s%s", dialect.DefineOpen, dialect.DefineClose)
				}
				if u.Value == dialect.DefineOpen {
					return nil, nil, p.errorf(u, `Too many opened "%s"`, dialect.DefineOpen)
				}
				if u.Value == dialect.DefineClose {
					break
				}
				inner = append(inner, u)
			}
			if !slot {
				def = inner
				slot = true
			}
			body = append(body, token.New(token.D_DEFINE_VAR, "VAR", t.Pos))

		case t.Value == dialect.DefineClose:
			return body, def, nil

		default:
			body = append(body, t)
		}
	}
}

// paramDefine reads "(param) body" from the cursor to the end of the line.
// Every occurrence of param in the body becomes the argument slot.
func (p *parser) paramDefine(name token.Token) (dialect.Macro, error) {
	param := p.Next()
	if param.Kind != token.IDENTIFIER {
		return dialect.Macro{}, p.errorf(param, "Invalid define parameter: %s", param.Value)
	}
	if p.Next().Value != dialect.DefineArgClose {
		return dialect.Macro{}, p.errorf(p.tk, "Missing %s", dialect.DefineArgClose)
	}

	var body []token.Token
	for {
		t := p.Next()
		if t.Kind == token.NEWLINE || t.Kind == token.EOF {
			break
		}
		if t.Kind == token.IDENTIFIER && t.VarName() == param.VarName() {
			t = t.WithKind(token.D_DEFINE_VAR)
		}
		body = append(body, t)
	}
	if len(body) == 0 {
		return dialect.Macro{}, p.errorf(name, "Define definition blank.")
	}
	return dialect.Macro{Name: name.Lower(), Body: body}, nil
}

// expandDefine replaces "[name]" or "[name](args)" at the cursor with the
// define body. Arguments may hold other invocations. The cursor is left on
// the last token read.
func (p *parser) expandDefine() ([]token.Token, error) {
	name, blank, err := p.inBracket(dialect.DefineOpen, dialect.DefineClose)
	if err != nil {
		return nil, err
	}
	if blank {
		return nil, p.errorf(p.tk, "Define blank.")
	}
	if !p.isDefineName(name.Value) {
		return nil, p.errorf(name, "%s invalid define name.", name.Value)
	}
	m, ok := p.defines[name.Lower()]
	if !ok {
		return nil, p.errorf(name, "%s define not defined.", name.Value)
	}

	var arg []token.Token
	if p.tk.Kind == token.C_SYMBOL && p.tk.Value == dialect.DefineArgOpen {
		depth := 1
	args:
		for {
			t := p.Next()
			switch {
			case t.Kind == token.NEWLINE || t.Kind == token.EOF:
				return nil, p.errorf(t, "Missing %s", dialect.DefineArgClose)
			case t.Kind == token.D_SYMBOL && t.Value == dialect.DefineOpen:
				inner, err := p.expandDefine()
				if err != nil {
					return nil, err
				}
				arg = append(arg, inner...)
				continue
			case t.Value == dialect.DefineArgOpen:
				depth++
			case t.Value == dialect.DefineArgClose:
				depth--
				if depth == 0 {
					break args
				}
			}
			arg = append(arg, t)
		}
		p.Next()
	}

	value := m.Default
	if len(arg) > 0 {
		value = arg
	}

	var out []token.Token
	for _, b := range m.Body {
		if b.Kind == token.D_DEFINE_VAR {
			out = append(out, value...)
			continue
		}
		out = append(out, b.At(name.Pos))
	}
	p.prev()
	return out, nil
}

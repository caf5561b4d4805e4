package compiler

import (
	"strings"

	"badig/pkg/dialect"
	"badig/pkg/token"
)

// pass1 strips toggled lines, reads DEFINE, DECLARE, KEEP, FUNC and RET, and
// expands define invocations.
func (p *parser) pass1() error {
	p.ctx.log.Item("Pass 1.")
	p.inFunc = nil
	p.Emit(p.Next())

	for {
		p.Next()
		if p.tk.Kind == token.EOF {
			p.Emit(p.tk)
			return nil
		}

		switch {
		case p.tk.Kind == token.D_TOGGLE_REM && p.Last(1).Kind == token.NEWLINE:
			if err := p.toggleLines(); err != nil {
				return err
			}
			continue

		case p.tk.Kind == token.D_INSTRUCTION:
			first := p.Last(1).Kind == token.NEWLINE
			var err error
			switch {
			case p.tk.Is("EXIT"), p.tk.Is("INCLUDE"):
			case p.tk.Is("ENDIF"):
				continue
			case p.tk.Is("DEFINE") && first:
				if err = p.defineLine(); err != nil {
					return err
				}
				continue
			case p.tk.Is("DECLARE") && first:
				if err = p.declareLine(); err != nil {
					return err
				}
				continue
			case p.tk.Is("KEEP") && first:
				if err = p.keepLine(); err != nil {
					return err
				}
				continue
			case p.tk.Is("FUNC") && first:
				err = p.funcDef()
			case p.tk.Is("RET") && first:
				err = p.funcRet()
			default:
				return p.errorf(p.tk, "%s must be at the start of a line.", p.tk.Value)
			}
			if err != nil {
				return err
			}

		case p.tk.Kind == token.D_SYMBOL && p.tk.Value == dialect.DefineOpen:
			toks, err := p.expandDefine()
			if err != nil {
				return err
			}
			p.Emit(toks...)
			continue

		default:
			res := p.ctx.d.Pass1(p)
			switch res.Action {
			case dialect.Skip:
				continue
			case dialect.Replace:
				p.tk = res.Token
			}
		}

		p.Emit(p.tk)
	}
}

// toggleLines drops a line guarded by an inactive #tag. A tag alone on a
// line guards every line up to the same tag alone on a line.
func (p *parser) toggleLines() error {
	if (p.keeps[p.tk.Upper()] || p.keeps[dialect.KeepAll]) && !p.keeps[dialect.KeepNone] {
		return nil
	}

	toggle := p.tk
	block := p.Peek(1).Kind == token.NEWLINE
	for {
		last := p.tk
		tk := p.Next()
		switch {
		case tk.Kind == token.EOF:
			return p.errorf(toggle, "Toggle rem not closed from %s", toggle.Value)
		case tk.Kind == token.NEWLINE && !block:
			return nil
		case tk.Kind == token.D_TOGGLE_REM && tk.Is(toggle.Value) &&
			last.Kind == token.NEWLINE && p.Peek(1).Kind == token.NEWLINE:
			return nil
		}
	}
}

// keepLine reads "KEEP #tag #tag ...".
func (p *parser) keepLine() error {
	for {
		keep := p.Next()
		if keep.Kind == token.NEWLINE || keep.Kind == token.EOF {
			return nil
		}
		if keep.Kind != token.D_TOGGLE_REM {
			return p.errorf(keep, "Invalid keep tag: %s", keep.Value)
		}
		if p.keeps[keep.Upper()] {
			return p.errorf(keep, "Keep tag duplicated: %s", keep.Value)
		}
		p.keeps[keep.Upper()] = true
	}
}

// funcDef reads "FUNC .name(arg, arg=default)" and leaves a FUNC_DEF marker.
func (p *parser) funcDef() error {
	fn := p.Next()
	if p.inFunc != nil {
		return p.errorf(*p.inFunc, "Already inside a function.")
	}
	if _, ok := p.functions[fn.Lower()]; ok {
		return p.errorf(fn, "Function name duplicated: %s", fn.Value)
	}

	args, err := p.funcArgList(fn)
	if err != nil {
		return err
	}

	p.funcArgs = nil
	p.funcDefaults = nil
	for _, arg := range args {
		if len(arg) == 0 {
			return p.errorf(fn, "Function definition missing argument: %s", fn.Value)
		}
		if arg[0].Kind != token.IDENTIFIER {
			return p.errorf(arg[0], "Function definition only takes variables: %s", arg[0].Value)
		}
		var def []token.Token
		if len(arg) > 1 {
			if arg[1].Value != dialect.FuncAssign {
				return p.errorf(arg[1], "Function definition only takes one variable: %s", arg[1].Value)
			}
			def = arg[2:]
		}
		p.funcArgs = append(p.funcArgs, arg[:1])
		p.funcDefaults = append(p.funcDefaults, def)
	}

	pos := p.tk.Pos.WithCol(1)
	p.tk = token.New(token.FUNC_DEF, fn.Lower(), pos)
	p.inFunc = &fn
	return nil
}

// funcRet reads "RET var, var" closing the open function.
func (p *parser) funcRet() error {
	ret := p.tk
	if p.inFunc == nil {
		return p.errorf(ret, "Ret without function.")
	}

	ends := func(t token.Token) bool {
		return t.Value == p.desc.AltRem || t.Kind == token.C_SEPARATOR ||
			t.Kind == token.NEWLINE || t.Kind == token.EOF
	}

	var rets [][]token.Token
	if !ends(p.Peek(1)) {
		var cur []token.Token
		for {
			t := p.Next()
			if t.Value == dialect.FuncSep {
				rets = append(rets, cur)
				cur = nil
				continue
			}
			if ends(t) {
				rets = append(rets, cur)
				p.prev()
				break
			}
			cur = append(cur, t)
		}
	}
	for _, r := range rets {
		if len(r) == 0 {
			return p.errorf(ret, "Function return missing variable.")
		}
	}

	p.tk = p.Tokens(p.desc.FuncReturn)[0]
	p.functions[p.inFunc.Lower()] = function{args: p.funcArgs, rets: rets, defaults: p.funcDefaults}
	p.inFunc = nil
	return nil
}

// funcArgList reads "(a, b(1), c)" after a function name, splitting on the
// top level separators. The cursor ends on the closing parenthesis.
func (p *parser) funcArgList(fn token.Token) ([][]token.Token, error) {
	if fn.Kind != token.D_FUNC_NAME {
		return nil, p.errorf(fn, "Invalid function name: %s", fn.Value)
	}
	if p.Next().Value != dialect.FuncOpen {
		return nil, p.errorf(p.tk, "Missing %s", dialect.FuncOpen)
	}
	if p.Peek(1).Value == dialect.FuncClose {
		p.Next()
		return nil, nil
	}

	var args [][]token.Token
	var arg []token.Token
	depth := 1
	for {
		t := p.Next()
		switch {
		case t.Kind == token.NEWLINE || t.Kind == token.EOF:
			return nil, p.errorf(t, "Unbalanced %s%s", dialect.FuncOpen, dialect.FuncClose)
		case t.Value == dialect.FuncOpen:
			depth++
		case t.Value == dialect.FuncSep && depth == 1:
			args = append(args, arg)
			arg = nil
			continue
		case t.Value == dialect.FuncClose:
			depth--
			if depth == 0 {
				return append(args, arg), nil
			}
		}
		arg = append(arg, t)
	}
}

// isDefineName accepts names made of letters, digits and underscores, and
// the print-at shortcut.
func (p *parser) isDefineName(s string) bool {
	if s == p.desc.PrintAlt {
		return true
	}
	if s == "" {
		return false
	}
	for _, r := range strings.ToLower(s) {
		if r != '_' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

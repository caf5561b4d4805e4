package compiler

import (
	"badig/pkg/dialect"
	"badig/pkg/token"
)

// funcCall expands "[v1, v2 =] .name(a1, a2)" into
//
//	arg1=a1:arg2=a2:gosub <func>:v1=ret1:v2=ret2
//
// Missing arguments take their defaults and assignments of a variable to
// itself are left out.
func (p *parser) funcCall() ([]token.Token, error) {
	fn := p.tk
	def, ok := p.functions[fn.Lower()]
	if !ok {
		return nil, p.errorf(fn, "Function not defined: %s", fn.Value)
	}

	vars, err := p.callVars()
	if err != nil {
		return nil, err
	}
	args, err := p.funcArgList(fn)
	if err != nil {
		return nil, err
	}
	if len(args) > len(def.args) {
		return nil, p.errorf(fn, "Function arguments mismatch.")
	}
	if len(vars) > len(def.rets) {
		return nil, p.errorf(fn, "Function variable mismatch.")
	}

	equal := p.Tokens(p.desc.Equal)[0]
	sep := p.Tokens(p.desc.Separator)[0]

	var out []token.Token
	for i, d := range def.args {
		var value []token.Token
		if i < len(args) && len(args[i]) > 0 {
			value = args[i]
		} else {
			value = def.defaults[i]
		}
		if len(value) == 0 || sameTokens(d, value) {
			continue
		}
		out = append(out, d[0], equal)
		out = append(out, value...)
		out = append(out, sep)
	}

	out = append(out, p.Tokens(p.desc.FuncCall)...)
	out = append(out, token.New(token.FUNC_CALL, fn.Lower(), fn.Pos))

	for i, v := range vars {
		if len(v) == 0 || sameTokens(def.rets[i], v) {
			continue
		}
		out = append(out, sep, v[0], equal)
		out = append(out, def.rets[i]...)
	}
	return out, nil
}

// callVars takes back "v1, v2 =" from the output when the call result is
// assigned. The scan stops at the start of the statement.
func (p *parser) callVars() ([][]token.Token, error) {
	if p.Last(1).Value != dialect.FuncAssign {
		return nil, nil
	}
	p.pop()

	var vars [][]token.Token
	var cur []token.Token
	for {
		t := p.Last(1)
		if t.Kind == token.NEWLINE || t.Kind == token.PROGRAM || t.Kind == token.C_SEPARATOR ||
			p.desc.IsStopWord(t.Value) {
			vars = append(vars, cur)
			break
		}
		p.pop()
		if t.Value == dialect.FuncSep {
			vars = append(vars, cur)
			cur = nil
			continue
		}
		cur = append([]token.Token{t}, cur...)
	}

	for i, j := 0, len(vars)-1; i < j; i, j = i+1, j-1 {
		vars[i], vars[j] = vars[j], vars[i]
	}

	for _, v := range vars {
		if len(v) == 0 {
			continue
		}
		if v[0].Kind != token.IDENTIFIER {
			return nil, p.errorf(v[0], "Function call only takes variables: %s", v[0].Value)
		}
		if len(v) > 1 {
			return nil, p.errorf(v[1], "Function call only takes one variable: %s", v[1].Value)
		}
	}
	return vars, nil
}

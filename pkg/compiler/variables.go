package compiler

import (
	"strings"

	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/token"
)

// hardVariable records the names that must not be generated: two letter
// names used as written, and long names kept with "~".
func (p *parser) hardVariable(tk token.Token) error {
	v := p.ctx.vars
	n := p.desc.VarChars
	name := tk.VarName()
	size := len([]rune(name))

	if p.Last(1).Value == dialect.KeepSigil {
		if size <= n {
			return p.errorf(tk, "Can't use %s on a short named variable: %s", dialect.KeepSigil, name)
		}
		if short, ok := v.declares[tk.Qualified()]; ok {
			return p.errorf(tk, "Long variable already declared: %s %s:%s", tk.Lower(), name, short)
		}
		for _, k := range v.hardLong {
			kn := k.VarName()
			if name != kn && (strings.HasPrefix(kn, name) || strings.HasPrefix(name, kn)) {
				p.warnf(tk, "Reserved long variable conflict: %s %s", name, kn)
			}
		}
		p.pop()
		v.keepLong(tk)
		return nil
	}

	if _, ok := v.declares[tk.Qualified()]; ok {
		return nil
	}

	if size > n {
		for s := range v.hardShort {
			if prefix(name, n) == s {
				p.warnf(tk, "Reserved short variable conflict: %s %s", name, s)
			}
		}
	}

	kept := false
	for _, k := range v.hardLong {
		if k.VarName() == name {
			kept = true
			break
		}
	}
	for _, k := range v.hardLong {
		kn := k.VarName()
		if name != kn && (name == prefix(kn, n) || (kept && strings.HasPrefix(kn, name))) {
			p.warnf(tk, "Reserved long variable conflict: %s %s", name, kn)
		}
	}

	if size <= n {
		v.hardShort[name] = true
	}
	return nil
}

// shorten renames a long variable to its short name, allocating one on
// first use. Short and kept names are returned as they are.
func (p *parser) shorten(tk token.Token) (token.Token, error) {
	v := p.ctx.vars
	if len([]rune(tk.VarName())) <= p.desc.VarChars || v.keptLong(tk) {
		return tk, nil
	}
	short, err := v.allocate(tk, p.desc, p.desc.IsReserved)
	if err != nil {
		return tk, err
	}
	return tk.WithValue(short + tk.VarType()), nil
}

// allocate returns the short name of tk's variable. New names are taken
// counting down from the last slot, skipping any name already in use and
// any name reserved reports as a keyword.
func (v *Vars) allocate(tk token.Token, desc *dialect.Description, reserved func(string) bool) (string, error) {
	key := tk.Qualified()
	if short, ok := v.declares[key]; ok {
		return short, nil
	}

	for v.index > 0 {
		v.index--
		short := desc.ShortName(v.index)
		if v.shortTaken(short, desc.VarChars) || (reserved != nil && reserved(short)) {
			continue
		}
		v.declares[key] = short
		return short, nil
	}
	return "", infolog.Errorf(tk.Pos, "Too many variables used (max=%d): %s", desc.VarMax, tk.Value)
}

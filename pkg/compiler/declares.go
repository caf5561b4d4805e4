package compiler

import (
	"badig/pkg/dialect"
	"badig/pkg/token"
)

// declareLine reads "DECLARE long[:short], ...". A long name with a short one
// fixes its short name; a long name alone is kept unshortened (two letter
// names are reserved as short names).
func (p *parser) declareLine() error {
	v := p.ctx.vars
	n := p.desc.VarChars

	for {
		long := p.Next()
		if !dialect.IsIdentifier(long.Value) {
			return p.errorf(long, "Invalid declared variable: %s", long.Value)
		}
		if len(long.VarName()) == 1 {
			return p.errorf(long, "Declared variable too short: %s", long.Lower())
		}
		if p.desc.IsReserved(long.Value) {
			return p.errorf(long, "Variable is a reserved keyword: %s", long.Lower())
		}
		name := long.VarName()

		if next := p.Peek(1); next.Value == dialect.DeclareSep || next.Kind == token.NEWLINE || next.Kind == token.EOF {
			for key, short := range v.declares {
				if key == long.Qualified() {
					return p.errorf(long, "Long variable already reserved: %s %s:%s", name, qualifiedName(key), short)
				}
				if prefix(name, n) == short {
					p.warnf(long, "Declared variable conflict: %s %s:%s", name, qualifiedName(key), short)
				}
			}
			for _, k := range v.hardLong {
				if prefix(name, n) == prefix(k.VarName(), n) {
					p.warnf(long, "Reserved long variable conflict: %s %s", name, k.VarName())
				}
			}
			for s := range v.hardShort {
				if prefix(name, n) == s {
					p.warnf(long, "Reserved short variable conflict: %s %s", name, s)
				}
			}

			if len([]rune(name)) == n {
				v.hardShort[name] = true
			} else {
				v.keepLong(long)
			}

			if p.Next().Value == dialect.DeclareSep {
				continue
			}
			return nil
		}

		if assign := p.Next(); assign.Value != dialect.DeclareAssign {
			return p.errorf(assign, "Expecting: %s", dialect.DeclareAssign)
		}
		short := p.Next()
		if !p.desc.IsShortVar(short.Value) {
			return p.errorf(short, "Invalid declared short variable: %s", short.Lower())
		}
		s := short.Lower()

		for key, d := range v.declares {
			if key == long.Qualified() {
				return p.errorf(short, "Long variable already declared: %s:%s %s:%s", name, s, qualifiedName(key), d)
			}
			if s == d {
				return p.errorf(short, "Short variable already declared: %s:%s %s:%s", name, s, qualifiedName(key), d)
			}
		}
		if v.keptLong(long) {
			return p.errorf(long, "Long variable already reserved: %s:%s %s", name, s, name)
		}
		for _, k := range v.hardLong {
			if s == prefix(k.VarName(), n) {
				p.warnf(short, "Reserved long variable conflict: %s:%s %s", name, s, k.VarName())
			}
		}
		if v.hardShort[s] {
			p.warnf(short, "Reserved short variable conflict: %s:%s %s", name, s, s)
		}

		v.declares[long.Qualified()] = s

		tk := p.Next()
		if tk.Value != dialect.DeclareSep {
			if tk.Kind != token.NEWLINE && tk.Kind != token.EOF {
				return p.errorf(tk, "Expecting: %s", dialect.DeclareSep)
			}
			return nil
		}
	}
}

// qualifiedName strips the file from a "name@file" key.
func qualifiedName(key string) string {
	for i := range key {
		if key[i] == '@' {
			return key[:i]
		}
	}
	return key
}

package compiler

import (
	"path/filepath"

	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/source"
	"badig/pkg/token"
)

// Options are the conversion switches.
type Options struct {
	LineStart     int
	LineStep      int
	RemHeader     bool
	StripSpaces   bool
	CapitaliseAll bool
	Translate     bool
	LabelReport   bool
	// ConvertPrint turns every PRINT into "?" ("?") or the other way ("p").
	ConvertPrint string
	// StripThenGoto drops THEN before GOTO ("t") or GOTO after THEN/ELSE ("g").
	StripThenGoto string
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{LineStart: 10, LineStep: 10, RemHeader: true}
}

const (
	header1 = "Converted with Basic Dignified"
	header2 = "https://github.com/farique1/basic-dignified"
)

// Vars holds the variable naming state shared by a file and everything it
// includes, so short names never collide across files.
type Vars struct {
	// declares maps "long@file" to its short name.
	declares map[string]string
	// hardShort holds two letter names written directly in the code.
	hardShort map[string]bool
	// hardLong holds long names kept as they are (~name).
	hardLong []token.Token
	// index counts down through the short name slots.
	index int
}

// NewVars returns an empty naming state with max short name slots.
func NewVars(max int) *Vars {
	return &Vars{declares: map[string]string{}, hardShort: map[string]bool{}, index: max}
}

// Declares returns a copy of the long to short name map.
func (v *Vars) Declares() map[string]string {
	out := make(map[string]string, len(v.declares))
	for k, s := range v.declares {
		out[k] = s
	}
	return out
}

func (v *Vars) keepLong(tk token.Token) {
	for _, k := range v.hardLong {
		if k.Qualified() == tk.Qualified() {
			return
		}
	}
	v.hardLong = append(v.hardLong, tk)
}

// keptLong reports whether tk names a kept long variable of its own file.
func (v *Vars) keptLong(tk token.Token) bool {
	for _, k := range v.hardLong {
		if k.Qualified() == tk.Qualified() {
			return true
		}
	}
	return false
}

func (v *Vars) shortTaken(s string, chars int) bool {
	for _, d := range v.declares {
		if d == s {
			return true
		}
	}
	if v.hardShort[s] {
		return true
	}
	for _, k := range v.hardLong {
		if prefix(k.VarName(), chars) == s {
			return true
		}
	}
	return false
}

// Context is the state of one conversion, passed down the include chain.
type Context struct {
	opts   Options
	d      dialect.Dialect
	desc   *dialect.Description
	loader source.Loader
	log    *infolog.Logger
	vars   *Vars

	main  string
	stack []string
}

func newContext(d dialect.Dialect, loader source.Loader, log *infolog.Logger, opts Options, main string) *Context {
	return &Context{
		opts:   opts,
		d:      d,
		desc:   d.Description(),
		loader: loader,
		log:    log,
		vars:   NewVars(d.Description().VarMax),
		main:   main,
		stack:  []string{abs(main)},
	}
}

// enter returns the context for an included file. It shares the naming
// state and only reports errors.
func (c *Context) enter(file string) *Context {
	child := *c
	child.log = c.log.Quiet()
	child.stack = append(append([]string{}, c.stack...), abs(file))
	return &child
}

func (c *Context) including(file string) bool {
	a := abs(file)
	for _, f := range c.stack {
		if f == a {
			return true
		}
	}
	return false
}

func abs(path string) string {
	if a, err := filepath.Abs(path); err == nil {
		return a
	}
	return path
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

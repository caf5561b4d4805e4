package compiler

import (
	"strconv"
	"unicode"

	"badig/pkg/dialect"
	"badig/pkg/token"
)

// LineInfo ties a generated line number to the source line that produced it.
// Source is 0 for generated lines.
type LineInfo struct {
	Number int
	Source int
	Text   string
	File   string
}

// fixup is a placeholder waiting for a line number.
type fixup struct {
	name  string
	index int
	line  int
}

// pass4 numbers the lines, shortens variables and resolves every jump,
// loop return, exit and call to a line number.
func (p *parser) pass4() error {
	p.ctx.log.Item("Pass 4.")
	p.restart()

	opts := p.ctx.opts
	step := opts.LineStep
	line := opts.LineStart - step

	if opts.RemHeader {
		p.insertRem(2, header1)
		p.insertRem(5, header2)
	}

	labels := map[string]int{}
	funcs := map[string]int{}
	loopRets := map[string]int{}
	var jumps, exits, calls []fixup
	p.lines = nil
	p.labelReport = map[int][]string{}

	for {
		p.Next()
		if p.tk.Kind == token.EOF {
			p.Emit(p.tk)
			break
		}

		// Names are bound to their file so includes keep their own labels.
		name := p.tk.Value + "@" + p.tk.Pos.File

		switch p.tk.Kind {
		case token.LABEL_LINE:
			if _, dup := labels[name]; dup {
				return p.errorf(p.tk, "Label duplicated: %s", p.tk.Value)
			}
			labels[name] = line
			p.report(line, "<"+p.tk.Value)
			continue

		case token.LABEL_JUMP, token.LABEL_RETURN:
			p.report(line, ">"+p.tk.Value)
			if p.tk.Kind == token.LABEL_RETURN {
				loopRets[name] = line + step
			}
			if p.tk.Value == dialect.LabelSameLine {
				p.tk = p.tk.WithValue(strconv.Itoa(line))
			} else {
				jumps = append(jumps, fixup{name, len(p.out), line})
			}

		case token.LABEL_EXIT:
			p.report(line, "*"+p.tk.Value)
			exits = append(exits, fixup{name, len(p.out), line})

		case token.FUNC_DEF:
			funcs[name] = line
			p.report(line, "<"+p.tk.Value)
			continue

		case token.FUNC_CALL:
			calls = append(calls, fixup{name, len(p.out), line})
			p.report(line, ">"+p.tk.Value)

		case token.NEWLINE:
			p.lines = append(p.lines, LineInfo{Number: line, Source: p.tk.Pos.Line, Text: p.tk.Pos.Text, File: p.tk.Pos.File})
			// The last line needs no number after it.
			if p.Peek(1).Kind == token.EOF {
				break
			}
			line += step

			start := p.Peek(1)
			if isDigits(start.Value) {
				return p.errorf(start, "Line starting with number: %s", start.Value)
			}
			p.Emit(p.tk, token.New(token.LINE_NUMBER, strconv.Itoa(line), p.tk.Pos.WithLine(start.Pos.Line).WithCol(0)))
			continue

		case token.IDENTIFIER:
			tk, err := p.shorten(p.tk)
			if err != nil {
				return err
			}
			p.tk = tk
		}

		p.Emit(p.tk)
	}

	for _, j := range jumps {
		target, ok := labels[j.name]
		if !ok {
			tk := p.out[j.index]
			return p.errorf(tk, "Label does not exist: %s", tk.Value)
		}
		p.out[j.index] = p.out[j.index].WithValue(strconv.Itoa(target))
	}
	for _, e := range exits {
		target, ok := loopRets[e.name]
		if !ok || target > line {
			return p.errorf(p.out[e.index], "Loop exit past end of program.")
		}
		p.out[e.index] = p.out[e.index].WithValue(strconv.Itoa(target))
	}
	for _, c := range calls {
		target, ok := funcs[c.name]
		if !ok {
			tk := p.out[c.index]
			return p.errorf(tk, "Function not defined: %s", tk.Value)
		}
		p.out[c.index] = p.out[c.index].WithValue(strconv.Itoa(target))
	}
	return nil
}

// insertRem puts a "'text" line into the input at idx.
func (p *parser) insertRem(idx int, text string) {
	pos := p.tk.Pos.WithLine(0).WithCol(0)
	rem := []token.Token{
		token.New(token.C_REM, p.desc.AltRem, pos),
		token.New(token.REM_TEXT, text, pos.WithCol(1)),
		token.New(token.NEWLINE, "\r", pos.WithCol(len(text))),
	}
	in := make([]token.Token, 0, len(p.in)+len(rem))
	in = append(in, p.in[:idx]...)
	in = append(in, rem...)
	p.in = append(in, p.in[idx:]...)
}

func (p *parser) report(line int, entry string) {
	p.labelReport[line] = append(p.labelReport[line], entry)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

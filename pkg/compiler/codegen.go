package compiler

import (
	"strings"

	"badig/pkg/token"
)

// generate renders the numbered token list as classic lines, without line
// terminators.
func (p *parser) generate() ([]string, error) {
	p.ctx.log.Item("Generating.")
	opts := p.ctx.opts
	space := " "
	if opts.StripSpaces {
		space = ""
	}

	var code []string
	var line []token.Token
	// Skip PROGRAM and its newline.
	for _, tk := range p.out[min(2, len(p.out)):] {
		if tk.Kind == token.EOF {
			break
		}
		if opts.Translate {
			for _, r := range tk.Value {
				if r > 0xFF {
					return nil, p.errorf(tk, "Translate cannot encode character: %c (%d)", r, r)
				}
			}
		}
		if tk.Value != "" {
			line = append(line, tk)
		}
		if tk.Kind != token.NEWLINE {
			continue
		}

		text := p.renderLine(line, space)
		if opts.LabelReport {
			if labels, ok := p.labelReport[lineNumber(line)]; ok {
				text = strings.TrimRight(text, " ") + p.desc.LabelReportRem + strings.Join(labels, " ")
			}
		}
		text = strings.TrimRight(text, " ")

		if n := len([]rune(text)); n > p.desc.MaxLineLength {
			return nil, p.errorf(tk, "Line too long: %d characters", n)
		}
		code = append(code, text)
		line = nil
	}
	return code, nil
}

// renderLine joins the tokens of one line. Keywords get a space on each side
// unless they touch a symbol.
func (p *parser) renderLine(line []token.Token, space string) string {
	var b strings.Builder
	for n, tk := range line {
		if tk.Kind == token.NEWLINE {
			continue
		}
		if p.ctx.d.Space(line, n, b.String()) {
			b.WriteString(" ")
		}

		keyword := !tk.Kind.IsLiteral() && p.desc.IsReserved(tk.Value)
		rendered := b.String()
		if keyword && rendered != "" && !strings.HasSuffix(rendered, " ") &&
			n > 0 && !p.desc.IsTight(line[n-1].Value) {
			b.WriteString(space)
		}

		b.WriteString(tk.Value)

		if tk.Kind == token.LINE_NUMBER ||
			(keyword && n+1 < len(line) && !p.desc.IsTight(line[n+1].Value)) {
			b.WriteString(space)
		}
	}
	return b.String()
}

func lineNumber(line []token.Token) int {
	if len(line) == 0 || line[0].Kind != token.LINE_NUMBER {
		return -1
	}
	n := 0
	for _, r := range line[0].Value {
		n = n*10 + int(r-'0')
	}
	return n
}

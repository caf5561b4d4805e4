package compiler

import (
	"badig/pkg/dialect"
	"badig/pkg/token"
)

// pass2 turns labels, loop labels and EXIT into placeholders and expands
// function calls.
func (p *parser) pass2() error {
	p.ctx.log.Item("Pass 2.")
	p.restart()
	p.loops = nil

	for {
		p.Next()
		if p.tk.Kind == token.EOF {
			p.Emit(p.tk)
			break
		}

		var err error
		switch {
		case p.tk.Kind == token.D_FUNC_NAME:
			var call []token.Token
			if call, err = p.funcCall(); err != nil {
				return err
			}
			p.Emit(call...)
			continue

		case p.tk.Kind == token.D_SYMBOL:
			switch {
			case p.tk.Value == dialect.LabelOpen && p.Last(1).Kind != token.NEWLINE &&
				p.Peek(1).Kind != token.NEWLINE && p.Peek(2).Value == dialect.LabelClose:
				err = p.jumpLabel()
			case p.tk.Value == dialect.LabelOpen:
				err = p.lineLabel()
			case p.tk.Value == dialect.LabelClose:
				err = p.loopReturn()
			}

		case p.tk.Kind == token.D_INSTRUCTION && p.tk.Is("EXIT"):
			err = p.loopExit()

		default:
			res := p.ctx.d.Pass2(p)
			switch res.Action {
			case dialect.Skip:
				continue
			case dialect.Replace:
				p.tk = res.Token
			}
		}
		if err != nil {
			return err
		}

		p.Emit(p.tk)
	}

	if len(p.loops) > 0 {
		open := p.loops[len(p.loops)-1]
		return p.errorf(open, "Loop label not closed from: %s", open.Value)
	}
	if p.inFunc != nil {
		return p.errorf(*p.inFunc, "Func without ret: %s", p.inFunc.Value)
	}
	return nil
}

// lineLabel handles "{name}" starting a line and "name{" opening a loop.
func (p *parser) lineLabel() error {
	var label token.Token
	switch {
	case p.Last(1).Kind == token.NEWLINE:
		content, blank, err := p.inBracket(dialect.LabelOpen, dialect.LabelClose)
		if err != nil {
			return err
		}
		if blank {
			return p.errorf(p.tk, "Label blank.")
		}
		p.prev()
		label = content
	case p.Last(2).Kind == token.NEWLINE:
		label = p.pop()
		p.loops = append(p.loops, label)
	default:
		return p.errorf(p.tk, "Label error.")
	}

	if !dialect.IsIdentifier(label.Value) {
		return p.errorf(label, "Invalid label name: %s", label.Value)
	}
	p.tk = token.New(token.LABEL_LINE, label.Lower(), p.tk.Pos)
	return nil
}

// jumpLabel handles "{name}" after code; "{@}" jumps to its own line.
func (p *parser) jumpLabel() error {
	content, blank, err := p.inBracket(dialect.LabelOpen, dialect.LabelClose)
	if err != nil {
		return err
	}
	if blank {
		return p.errorf(p.tk, "Label blank.")
	}
	p.prev()
	if content.Value != dialect.LabelSameLine && !dialect.IsIdentifier(content.Value) {
		return p.errorf(content, "Invalid label name: %s", content.Value)
	}
	p.tk = token.New(token.LABEL_JUMP, content.Lower(), content.Pos)
	return nil
}

// loopReturn closes the innermost loop with a jump back to its start.
func (p *parser) loopReturn() error {
	if len(p.loops) == 0 {
		return p.errorf(p.tk, "Loop label close without open.")
	}
	label := p.loops[len(p.loops)-1]
	p.loops = p.loops[:len(p.loops)-1]

	if last := p.Last(1); last.Kind != token.NEWLINE && last.Kind != token.C_SEPARATOR {
		p.Emit(p.Tokens(p.desc.Separator)...)
	}
	p.Emit(p.Tokens(p.desc.LoopBack)...)
	p.tk = token.New(token.LABEL_RETURN, label.Lower(), p.tk.Pos)
	return nil
}

// loopExit jumps past the end of the innermost loop.
func (p *parser) loopExit() error {
	if len(p.loops) == 0 {
		return p.errorf(p.tk, "Exit outside of a loop label.")
	}
	p.Emit(p.Tokens(p.desc.LoopBack)...)
	p.tk = token.New(token.LABEL_EXIT, p.loops[len(p.loops)-1].Lower(), p.tk.Pos)
	return nil
}

package dialect

import (
	"strings"

	"badig/pkg/token"
)

// lexData reads the items of a DATA statement as literal fields. Items run
// to the next comma, statement separator or line end; quoted items may hold
// both. An item ending in "_" at the end of a line continues on the next one.
func lexData(s Scanner, d *Description, tk token.Token) Result {
	if tk.Kind != token.C_DATA {
		return unhandled
	}
	s.Emit(tk)

	for s.Peek() == ' ' {
		s.Advance()
	}
	if s.Peek() == '\r' || string(s.Peek()) == d.Separator {
		return skip
	}

	var part, join string
	start := s.Pos()
	for {
		if s.Peek() == '\r' {
			if join != "" {
				s.Emit(token.New(token.DATA_FIELD, join, start))
			}
			return skip
		}
		last := s.Advance()
		part += string(last)

		if strings.TrimSpace(part) == "" {
			part = ""
			start = s.Pos()
			continue
		}

		if part == d.Quote {
			for s.Peek() != '\r' {
				last = s.Advance()
				part += string(last)
				if string(last) == d.Quote {
					break
				}
			}
		}

		next := s.Peek()
		isSep := string(last) == d.DataSeparator
		atEnd := next == '\r' || string(next) == d.Separator
		if !isSep && !atEnd {
			continue
		}

		if atEnd && !isSep && next == '\r' && strings.HasSuffix(part, LineJoin) {
			if s.NextLine() {
				join += strings.TrimSuffix(part, LineJoin)
				part = ""
				continue
			}
		}

		if isSep {
			part = strings.TrimSuffix(part, d.DataSeparator)
		}
		s.Emit(token.New(token.DATA_FIELD, join+part, start))
		join = ""

		if isSep {
			here := s.Pos()
			s.Emit(token.New(token.C_SYMBOL, d.DataSeparator, here.WithCol(here.Col-1)))
			start = s.Pos()
			part = ""
		}
		if atEnd {
			return skip
		}
	}
}

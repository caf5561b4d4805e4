package token

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position locates a token in its source file. Col is 1-based; Offset is the
// width of the line's leading blanks, used to place the error caret under a
// trimmed line.
type Position struct {
	Line   int
	Col    int
	Offset int
	Text   string
	File   string
	Total  int
}

// NewPosition builds a position on a source line, measuring its indentation.
func NewPosition(line, col int, text, file string, total int) Position {
	return Position{
		Line:   line,
		Col:    col,
		Offset: len(text) - len(strings.TrimLeft(text, " \t")),
		Text:   text,
		File:   file,
		Total:  total,
	}
}

// WithCol returns a copy at another column of the same line.
func (p Position) WithCol(col int) Position {
	p.Col = col
	return p
}

// WithLine returns a copy moved to another line number, keeping the text.
func (p Position) WithLine(line int) Position {
	p.Line = line
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%s:(%d,%d)", filepath.Base(p.File), p.Line, p.Col)
}

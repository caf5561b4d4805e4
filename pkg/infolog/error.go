package infolog

import (
	"fmt"
	"path/filepath"

	"badig/pkg/token"
)

// Error is a fatal conversion error tied to a source position.
type Error struct {
	Msg    string
	Pos    token.Position
	HasPos bool
}

// Errorf builds an Error at pos.
func Errorf(pos token.Position, format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Pos: pos, HasPos: true}
}

// Failf builds an Error with no source position.
func Failf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if !e.HasPos {
		return e.Msg
	}
	return fmt.Sprintf("%s: (%d,%d): %s", filepath.Base(e.Pos.File), e.Pos.Line, e.Pos.Col, e.Msg)
}

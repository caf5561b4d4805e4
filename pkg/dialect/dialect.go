// Package dialect describes the classic BASIC targets: the keyword tables
// and grammar the lexer matches against, and the small set of hooks through
// which a target adjusts lexing, parsing and code generation.
package dialect

import (
	"fmt"
	"sort"

	"badig/pkg/token"
)

// Action tells a pass loop what a hook did with the current token.
type Action int

const (
	// Unhandled lets the pass process the token normally.
	Unhandled Action = iota
	// Skip means the hook consumed the token (and emitted what it needed).
	Skip
	// Replace substitutes Result.Token for the current token.
	Replace
)

// Result is returned by every hook.
type Result struct {
	Action Action
	Token  token.Token
}

var (
	unhandled = Result{Action: Unhandled}
	skip      = Result{Action: Skip}
)

// ReplaceWith builds a Replace result.
func ReplaceWith(t token.Token) Result { return Result{Action: Replace, Token: t} }

// Scanner is the lexer cursor handed to Lex hooks.
type Scanner interface {
	// Peek returns the next character without consuming it. Line ends read
	// as '\r'.
	Peek() rune
	// Advance consumes and returns the next character of the current line.
	Advance() rune
	// NextLine moves to the start of the following source line. It reports
	// false when there is none.
	NextLine() bool
	// Pos is the position of the next character.
	Pos() token.Position
	Emit(toks ...token.Token)
}

// Stream is the parser cursor handed to pass hooks.
type Stream interface {
	// Tok is the current input token.
	Tok() token.Token
	// Next advances the input and returns the new current token.
	Next() token.Token
	// Peek looks n tokens ahead in the input (negative looks back).
	Peek(n int) token.Token
	// Last returns the n-th token from the end of the output (1 is the last).
	Last(n int) token.Token
	Emit(toks ...token.Token)
	// Tokens lexes literal code text positioned at the current token.
	Tokens(text string) []token.Token
}

// Macro is a define: a body with an optional parameter slot
// (token.D_DEFINE_VAR) and the tokens used when no argument is given.
type Macro struct {
	Name    string
	Body    []token.Token
	Default []token.Token
}

// Dialect is implemented once per target.
type Dialect interface {
	Description() *Description
	// DefaultDefines returns the built-in defines (the [?] print-at form).
	DefaultDefines(tokens func(string) []token.Token) []Macro
	Lex(s Scanner, tk token.Token) Result
	Pass1(s Stream) Result
	Pass2(s Stream) Result
	// Space reports whether a disambiguating space is needed before
	// line[n], given the text rendered so far.
	Space(line []token.Token, n int, rendered string) bool
}

type constructor func() Dialect

var registry = map[string]constructor{
	"msx":  NewMSX,
	"coco": NewCoCo,
}

// New returns the dialect registered under id.
func New(id string) (Dialect, error) {
	c, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown system id: %q (available: %v)", id, IDs())
	}
	return c(), nil
}

// IDs lists the registered dialect ids.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// base gives every hook its do-nothing behaviour.
type base struct {
	desc *Description
}

func (b *base) Description() *Description { return b.desc }

func (b *base) DefaultDefines(func(string) []token.Token) []Macro { return nil }

func (b *base) Lex(Scanner, token.Token) Result { return unhandled }

func (b *base) Pass1(Stream) Result { return unhandled }

func (b *base) Pass2(Stream) Result { return unhandled }

func (b *base) Space([]token.Token, int, string) bool { return false }

package token

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a lexed or synthesized token.
type Kind int

const (
	ILLEGAL Kind = iota // unrecognized character

	// Generic
	PROGRAM // sentinel: start of the token list
	EOF     // sentinel: end of the token list
	NEWLINE // end of a source line
	SPACES  // blanks, never emitted

	// Dignified
	D_INSTRUCTION // DEFINE DECLARE INCLUDE KEEP ENDIF FUNC RET EXIT
	D_FUNC_NAME   // .name
	D_OPERATOR    // TRUE FALSE
	D_SYMBOL      // [ ] { } @ ~
	D_LINE_REM    // ##
	D_SEPARATOR   // _
	D_TOGGLE_REM  // #name
	D_BLOCK_REM   // ###
	D_PARTIAL     // . (incomplete)
	IDENTIFIER    // variable or label name

	// Classic
	C_OPERATOR    // AND OR NOT ...
	C_SYMBOL      // = + - ( ) ...
	C_EXT_SYMBOL  // ++ -- += -= *= /= ^=
	C_FUNCTION    // ABS CHR$ ...
	C_JUMP        // GOTO GOSUB THEN ...
	C_INSTRUCTION // PRINT FOR ...
	NUMBER        // decimal, &H, &O, &B
	C_REM         // ' or REM
	C_DATA        // DATA
	C_BLOCK_REM   // '' opening a rem block
	C_PARTIAL     // & &H &O &B (incomplete)
	C_SEPARATOR   // :
	C_QUOTE       // "

	// Literals
	STRING         // "text"
	REM_TEXT       // text after ' or REM
	REM_BLOCK_TEXT // a line inside a '' block
	REM_BLOCK_END  // '' closing a rem block
	DATA_FIELD     // one DATA item

	// Synthesized
	LINE_NUMBER   // classic line number
	C_CALL        // _ as a CALL instruction
	C_CALL_IDENT  // name after a CALL
	D_DEFINE_VAR  // parameter slot inside a define body
	D_SPECIAL     // dialect marker inside a default define
	LABEL_LINE    // {label} definition
	LABEL_JUMP    // jump to a label
	LABEL_RETURN  // loop label close: jump back to the loop start
	LABEL_EXIT    // EXIT: jump past the loop end
	FUNC_DEF      // FUNC body start
	FUNC_CALL     // gosub target of a function call
)

var kindNames = [...]string{
	ILLEGAL:        "ILLEGAL",
	PROGRAM:        "PROGRAM",
	EOF:            "EOF",
	NEWLINE:        "NEWLINE",
	SPACES:         "SPACES",
	D_INSTRUCTION:  "D_INSTRUCTION",
	D_FUNC_NAME:    "D_FUNC_NAME",
	D_OPERATOR:     "D_OPERATOR",
	D_SYMBOL:       "D_SYMBOL",
	D_LINE_REM:     "D_LINE_REM",
	D_SEPARATOR:    "D_SEPARATOR",
	D_TOGGLE_REM:   "D_TOGGLE_REM",
	D_BLOCK_REM:    "D_BLOCK_REM",
	D_PARTIAL:      "D_PARTIAL",
	IDENTIFIER:     "IDENTIFIER",
	C_OPERATOR:     "C_OPERATOR",
	C_SYMBOL:       "C_SYMBOL",
	C_EXT_SYMBOL:   "C_EXT_SYMBOL",
	C_FUNCTION:     "C_FUNCTION",
	C_JUMP:         "C_JUMP",
	C_INSTRUCTION:  "C_INSTRUCTION",
	NUMBER:         "NUMBER",
	C_REM:          "C_REM",
	C_DATA:         "C_DATA",
	C_BLOCK_REM:    "C_BLOCK_REM",
	C_PARTIAL:      "C_PARTIAL",
	C_SEPARATOR:    "C_SEPARATOR",
	C_QUOTE:        "C_QUOTE",
	STRING:         "STRING",
	REM_TEXT:       "REM_TEXT",
	REM_BLOCK_TEXT: "REM_BLOCK_TEXT",
	REM_BLOCK_END:  "REM_BLOCK_END",
	DATA_FIELD:     "DATA_FIELD",
	LINE_NUMBER:    "LINE_NUMBER",
	C_CALL:         "C_CALL",
	C_CALL_IDENT:   "C_CALL_IDENT",
	D_DEFINE_VAR:   "D_DEFINE_VAR",
	D_SPECIAL:      "D_SPECIAL",
	LABEL_LINE:     "LABEL_LINE",
	LABEL_JUMP:     "LABEL_JUMP",
	LABEL_RETURN:   "LABEL_RETURN",
	LABEL_EXIT:     "LABEL_EXIT",
	FUNC_DEF:       "FUNC_DEF",
	FUNC_CALL:      "FUNC_CALL",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral reports whether tokens of this kind carry raw source text that
// must not be case folded or re-spaced.
func (k Kind) IsLiteral() bool {
	switch k {
	case STRING, REM_TEXT, REM_BLOCK_TEXT, DATA_FIELD:
		return true
	}
	return false
}

// IsPlaceholder reports whether the token waits for a line number.
func (k Kind) IsPlaceholder() bool {
	switch k {
	case LABEL_JUMP, LABEL_RETURN, LABEL_EXIT, FUNC_CALL:
		return true
	}
	return false
}

// Token is a single lexical unit. Tokens are values: reusing one at a new
// place in the output is done with At.
type Token struct {
	Kind  Kind
	Value string
	Pos   Position
}

// New returns a token of kind k.
func New(k Kind, value string, pos Position) Token {
	return Token{Kind: k, Value: value, Pos: pos}
}

func (t Token) Upper() string { return strings.ToUpper(t.Value) }

func (t Token) Lower() string { return strings.ToLower(t.Value) }

// Is compares the value case-insensitively.
func (t Token) Is(value string) bool { return strings.EqualFold(t.Value, value) }

// VarName is the lowercase variable name without its type sigil.
func (t Token) VarName() string {
	return strings.ToLower(strings.TrimRight(t.Value, sigils))
}

// VarType is the trailing type sigil, if any.
func (t Token) VarType() string {
	name := strings.TrimRight(t.Value, sigils)
	return t.Value[len(name):]
}

// Qualified is the variable name bound to its source file, so equal names in
// different include files stay apart.
func (t Token) Qualified() string {
	return t.VarName() + "@" + t.Pos.File
}

// At returns a copy of the token placed at pos.
func (t Token) At(pos Position) Token {
	t.Pos = pos
	return t
}

// WithKind returns a copy of the token with another kind.
func (t Token) WithKind(k Kind) Token {
	t.Kind = k
	return t
}

// WithValue returns a copy of the token with another value.
func (t Token) WithValue(v string) Token {
	t.Value = v
	return t
}

func (t Token) String() string {
	return fmt.Sprintf("%-14s %-16q %s", t.Kind, t.Value, t.Pos)
}

const sigils = "%!#$"

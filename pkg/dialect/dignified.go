package dialect

import (
	"regexp"

	"badig/pkg/token"
)

// Dignified syntax shared by every target.
const (
	DefineOpen     = "["
	DefineClose    = "]"
	DefineSep      = ","
	DefineArgOpen  = "("
	DefineArgClose = ")"

	DeclareAssign = ":"
	DeclareSep    = ","
	KeepSigil     = "~"

	LabelOpen     = "{"
	LabelClose    = "}"
	LabelSameLine = "@"

	FuncOpen   = "("
	FuncClose  = ")"
	FuncSep    = ","
	FuncAssign = "="

	KeepAll  = "#ALL"
	KeepNone = "#NONE"

	LineJoin = "_"
)

var (
	identRe       = regexp.MustCompile(`(?i)^[a-z][a-z_0-9]*$`)
	funcNameRe    = regexp.MustCompile(`(?i)^\.[a-z][a-z_0-9]*$`)
	toggleSplitRe = regexp.MustCompile(`^(#)(.+)$`)
)

// IsIdentifier reports whether s is a valid dignified name for defines,
// labels and declared variables.
func IsIdentifier(s string) bool { return identRe.MatchString(s) }

// IsFuncName reports whether s is a valid function name (".name").
func IsFuncName(s string) bool { return funcNameRe.MatchString(s) }

// SplitToggle splits a mid-line "#name" into "#" and "name".
func SplitToggle(s string) (string, string, bool) {
	m := toggleSplitRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

var dignifiedPatterns = []Pattern{
	pattern(token.D_INSTRUCTION, words([]string{"DEFINE", "DECLARE", "INCLUDE", "KEEP", "ENDIF", "FUNC", "RET", "EXIT"})),
	pattern(token.D_FUNC_NAME, `\.[a-z][a-z_0-9]*`),
	pattern(token.D_OPERATOR, words([]string{"TRUE", "FALSE"})),
	pattern(token.D_SYMBOL, words([]string{"[", "]", "{", "}", "@", "~"})),
	pattern(token.D_LINE_REM, `##`),
	pattern(token.D_SEPARATOR, `_`),
	pattern(token.D_TOGGLE_REM, `#[a-z][a-z_0-9]*`),
	pattern(token.D_BLOCK_REM, `###`),
	pattern(token.D_PARTIAL, `\.`),
}

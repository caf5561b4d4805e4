package dialect

import (
	"strconv"

	"badig/pkg/token"
)

// DATA and REM are matched by their own patterns so DATA items and remarks
// stay literal; both remain reserved words.
var cocoClassic = classic{
	instructions: []string{"ATTR", "AUDIO", "BACKUP", "CIRCLE", "CLEAR", "CLOAD",
		"CLOSE", "CLS", "CMP", "COLOR", "CONT", "COPY", "CSAVE", "CVN",
		"DEF", "DIM", "DIR", "DLOAD", "DOS", "DRAW", "DRIVE",
		"DSKINI", "END", "EVAL", "EXEC", "FIELD",
		"FILES", "FOR", "FREE", "GET", "HBUFF", "HCIRCLE", "HCLS",
		"HCOLOR", "HDRAW", "HGET", "HLINE", "HPAINT", "HPRINT", "HPUT",
		"HRESET", "HSCREEN", "HSET", "HSTAT", "IF", "INPUT", "KILL", "LET",
		"LINE", "LOAD", "LOCATE", "LOC", "LOF", "LPOKE",
		"LSET", "MERGE", "MOTOR", "NEW", "NEXT", "OFF", "ON", "OPEN", "PAINT",
		"PALETTE", "PCLEAR", "PCLS", "PCOPY", "PLAY", "PMODE", "POKE", "PRESET",
		"PRINT", "PSET", "PUT", "READ", "RENAME", "RESET",
		"RESTORE", "RETURN", "RGB", "RSET", "SAVE", "SCREEN", "SET",
		"SKIPF", "SOUND", "STEP", "STOP", "SUB", "TAB", "TO", "TROFF",
		"TRON", "UNLOAD", "VERIFY", "WIDTH", "WRITE", "DSKI$", "DSKO$",
		"MKN$", "?", "DEFUSR#"},
	dollarFuncs: []string{"CHR$", "HEX$", "INKEY$", "LEFT$", "RIGHT$", "MID$", "STR$"},
	functions: []string{"ABS", "ASC", "ATN", "BUTTON", "COS", "EOF", "ERLIN", "ERRNO", "EXP",
		"FIX", "HPOINT", "INSTR", "INT", "JOYSTK", "LEN", "LOG", "LPEEK", "MEM",
		"PEEK", "POINT", "POS", "PPOINT", "RND", "SGN", "SIN", "STRING", "SQR",
		"TAN", "TIMER", "USR#", "VAL", "VARPTR"},
	jumps: []string{"GOTO", "GOSUB", "RENUM", "RUN", "DEL", "ELSE",
		"LIST", "LLIST", "THEN", "BRK", "ERR", "EDIT"},
	operators:    []string{"NOT", "AND", "OR"},
	symbols:      []string{">", "=", "<", "+", "*", "/", "^", "-", ",", "(", ")", ";", "#", "@"},
	extSymbols:   []string{"++", "--", "+=", "-=", "*=", "/=", "^="},
	reservedOnly: []string{"REM"},
	number:       `(?:\d+\.?\d*|\.\d+)(?:E[+-]?\d*)?|&H[a-f0-9]+|&O[0-7]+`,
	partial:      `&[HO]?`,
}

// Semigraphic blocks of the CoCo charset (0x80-0x8E).
const cocoBlocks = "█▛▜▀▙▌▚▘▟▞▐▝▄▖▗"

// Text screen width used by PRINT@ positions.
const cocoColumns = 32

// Markers around the arguments of a [?] invocation.
const (
	printAtOpen  = "?"
	printAtClose = "??"
)

type coco struct {
	base
}

// NewCoCo returns the Tandy Color Computer Extended BASIC dialect.
func NewCoCo() Dialect {
	d := newDescription(cocoClassic)
	d.ID = "coco"
	d.Name = "Tandy Color Computer"
	d.DignifiedExt = ".DCC"
	d.ASCIIExt = ".ACC"
	d.BinaryExt = ".BCC"
	d.Uppercase = true
	d.setTranslation(cocoBlocks, 0x80, nil)
	return &coco{base{desc: d}}
}

// DefaultDefines wraps the [?](x,y) arguments in markers that Pass2 turns
// into a PRINT@ screen offset.
func (c *coco) DefaultDefines(tokens func(string) []token.Token) []Macro {
	pos := token.Position{}
	body := []token.Token{
		token.New(token.D_SPECIAL, printAtOpen, pos),
		token.New(token.D_DEFINE_VAR, "", pos),
		token.New(token.D_SPECIAL, printAtClose, pos),
	}
	return []Macro{{Name: c.desc.PrintAlt, Body: body, Default: tokens("0")}}
}

func (c *coco) Lex(s Scanner, tk token.Token) Result {
	return lexData(s, c.desc, tk)
}

// Pass2 renders [?](x,y) as "?@32*y+x," folding the offset when both terms
// are plain numbers.
func (c *coco) Pass2(s Stream) Result {
	tk := s.Tok()
	if tk.Kind != token.D_SPECIAL || tk.Value != printAtOpen {
		return unhandled
	}

	var term, x, y []token.Token
	comma := false
	depth := 0
	for {
		t := s.Next()
		if t.Kind == token.EOF {
			break
		}
		if t.Kind == token.D_SPECIAL && t.Value == printAtClose {
			if comma {
				y = term
			} else {
				x = term
			}
			break
		}
		switch t.Value {
		case "(":
			depth++
		case ")":
			depth--
		}
		if t.Kind == token.C_SYMBOL && t.Value == "," && depth == 0 && !comma {
			x = term
			term = nil
			comma = true
			continue
		}
		term = append(term, t)
	}

	out := s.Tokens("?@")
	switch {
	case len(x) == 0 && len(y) == 0:
		out = append(out, s.Tokens("0")...)
	case len(y) == 0:
		out = append(out, x...)
	default:
		if len(x) == 0 {
			x = s.Tokens("0")
		}
		xn, xerr := strconv.Atoi(singleValue(x))
		yn, yerr := strconv.Atoi(singleValue(y))
		if xerr == nil && yerr == nil {
			out = append(out, s.Tokens(strconv.Itoa(cocoColumns*yn+xn))...)
		} else {
			out = append(out, s.Tokens(strconv.Itoa(cocoColumns)+"*(")...)
			out = append(out, y...)
			out = append(out, s.Tokens(")+(")...)
			out = append(out, x...)
			out = append(out, s.Tokens(")")...)
		}
	}

	next := s.Peek(1)
	if next.Kind != token.C_SEPARATOR && next.Kind != token.NEWLINE {
		out = append(out, s.Tokens(",")...)
	}
	s.Emit(out...)
	return skip
}

func (c *coco) Space(line []token.Token, n int, rendered string) bool {
	return separateWords(line, n, rendered)
}

func singleValue(toks []token.Token) string {
	if len(toks) != 1 || toks[0].Kind != token.NUMBER {
		return ""
	}
	return toks[0].Value
}

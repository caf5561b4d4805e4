package dialect

import (
	"strings"

	"badig/pkg/token"
)

var msxClassic = classic{
	instructions: []string{"AS", "BASE", "BEEP", "BLOAD", "BSAVE", "CALL", "CIRCLE",
		"CLEAR", "CLOAD", "CLOSE", "CLS", "CMD", "COLOR", "CONT",
		"COPY", "CSAVE", "CSRLIN", "DEF", "DEFDBL", "DEFINT", "MAXFILES",
		"DEFSNG", "DEFSTR", "DIM", "DRAW", "DSKI", "END", "EQV",
		"ERASE", "ERR", "ERROR", "FIELD", "FILES", "FN", "FOR", "GET",
		"IF", "INPUT", "INTERVAL", "IMP", "IPL", "KILL", "LET",
		"LFILES", "LINE", "LOAD", "LOCATE", "LPRINT", "LSET", "MAX",
		"MERGE", "MOTOR", "NAME", "NEW", "NEXT", "OFF", "ON", "OPEN",
		"OUT", "OUTPUT", "PAINT", "POINT", "POKE", "PRESET", "PRINT",
		"PSET", "PUT", "READ", "RSET", "SAVE", "SCREEN", "SET",
		"SOUND", "STEP", "STOP", "SWAP", "TIME", "TO", "TROFF",
		"TRON", "USING", "VPOKE", "WAIT", "WIDTH", "?", "DEFUSR#"},
	dollarFuncs: []string{"ATTR$", "BIN$", "CHR$", "DSKO$", "HEX$",
		"INKEY$", "INPUT$", "LEFT$", "MID$", "MKD$",
		"MKI$", "MKS$", "OCT$", "RIGHT$", "SPACE$",
		"SPRITE$", "STR$", "STRING$"},
	functions: []string{"ABS", "ASC", "ATN", "CDBL", "CINT", "COS", "CSNG", "CVD",
		"CVI", "CVS", "DSKF", "EOF", "EXP", "FIX", "FPOS", "FRE",
		"INP", "INSTR", "INT", "KEY", "LEN", "LOC", "LOF", "LOG",
		"LPOS", "PAD", "PDL", "PEEK", "PLAY", "POS", "RND", "SGN",
		"SIN", "SPC", "SPRITE", "SQR", "STICK", "STRIG", "TAB", "TAN",
		"USR#", "VAL", "VARPTR", "VDP", "VPEEK"},
	jumps: []string{"RESTORE", "AUTO", "RENUM", "DELETE", "RESUME", "ERL", "ELSE",
		"RUN", "LIST", "LLIST", "GOTO", "RETURN", "THEN", "GOSUB"},
	operators:  []string{"AND", "MOD", "NOT", "OR", "XOR"},
	symbols:    []string{">", "=", "<", "+", "*", "/", "^", `\`, "-", ",", "(", ")", ";", "#"},
	extSymbols: []string{"++", "--", "+=", "-=", "*=", "/=", "^="},
	number:     `(?:\d+\.?\d*|\.\d+)(?:[DE][+-]?\d*)?[%#!]?|&H[a-f0-9]+|&O[0-7]+|&B[01]+`,
	partial:    `&[HOB]?`,
}

// Graphic characters typed with their look-alike and stored as the letter
// the MSX keyboard produces them with.
var msxReplacements = map[rune]rune{
	'☺': 'A', '☻': 'B', '♥': 'C', '♦': 'D', '♣': 'E', '♠': 'F',
	'·': 'G', '◘': 'H', '○': 'I', '◙': 'J', '♂': 'K', '♀': 'L',
	'♪': 'M', '♬': 'N', '☼': 'O', '┿': 'P', '┴': 'Q', '┬': 'R',
	'┤': 'S', '├': 'T', '┼': 'U', '│': 'V', '─': 'W', '┌': 'X',
	'┐': 'Y', '└': 'Z', '┘': '[', '╳': ']', '╱': '\\', '╲': '^',
	'╂': '_',
}

// Upper half of the MSX charset (0x80-0xFF) in order.
const msxUpperCharset = "ÇüéâäàåçêëèïîìÄÅÉæÆôöòûùÿÖÜ¢£¥₧ƒáíóúñÑªº¿⌐¬½¼¡«»ÃãĨĩÕõŨũĲĳ¾∽◇‰¶§" +
	"▂▚▆▔◾▇▎▞▊▕▉▨▧▼▲▶◀⧗⧓▘▗▝▖▒Δǂω█▄▌▐▀αβΓπΣσμτΦθΩδ∞φ∈∩≡±≥≤⌠⌡÷≈°∙‐√ⁿ²❚■"

type msx struct {
	base
}

// NewMSX returns the MSX BASIC dialect.
func NewMSX() Dialect {
	d := newDescription(msxClassic)
	d.ID = "msx"
	d.Name = "MSX"
	d.DignifiedExt = ".dmx"
	d.ASCIIExt = ".amx"
	d.BinaryExt = ".bmx"
	d.setTranslation(msxUpperCharset, 0x80, msxReplacements)
	return &msx{base{desc: d}}
}

// DefaultDefines provides [?](x,y) as "locate x,y:?".
func (m *msx) DefaultDefines(tokens func(string) []token.Token) []Macro {
	body := tokens("locate VAR:?")
	body[1] = body[1].WithKind(token.D_DEFINE_VAR)
	return []Macro{{Name: m.desc.PrintAlt, Body: body, Default: tokens("0,0")}}
}

func (m *msx) Lex(s Scanner, tk token.Token) Result {
	return lexData(s, m.desc, tk)
}

// Pass1 turns a "_" that does not end a line into CALL, and protects the
// name that follows it from shortening.
func (m *msx) Pass1(s Stream) Result {
	tk := s.Tok()
	if tk.Kind == token.D_SEPARATOR && s.Peek(1).Kind != token.NEWLINE {
		return ReplaceWith(tk.WithKind(token.C_CALL))
	}
	if tk.Kind == token.IDENTIFIER && s.Last(1).Kind == token.C_CALL {
		return ReplaceWith(tk.WithKind(token.C_CALL_IDENT))
	}
	return unhandled
}

func (m *msx) Space(line []token.Token, n int, rendered string) bool {
	return separateWords(line, n, rendered)
}

// separateWords keeps "X OR" from reading as XOR and a hex number from
// swallowing a following word made of hex digits.
func separateWords(line []token.Token, n int, rendered string) bool {
	tk := line[n]
	if tk.Kind.IsLiteral() || tk.Value == "" || rendered == "" {
		return false
	}
	if tk.Is("OR") && strings.HasSuffix(strings.ToUpper(rendered), "X") {
		return true
	}
	return n > 0 && line[n-1].Kind == token.NUMBER && strings.ContainsRune("ABCDEF", rune(tk.Upper()[0]))
}

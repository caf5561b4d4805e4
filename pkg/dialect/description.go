package dialect

import (
	"regexp"
	"strings"

	"badig/pkg/token"
)

// classic lists the keyword and symbol tables of a target BASIC. Words ending
// in "#" take an optional digit suffix.
type classic struct {
	instructions []string
	functions    []string
	dollarFuncs  []string
	jumps        []string
	operators    []string
	symbols      []string
	extSymbols   []string
	reservedOnly []string
	number       string
	partial      string
}

// Description is the static data of a target dialect: its grammar, keyword
// sets and the literal quirks the lexer, parser and generator rely on.
type Description struct {
	ID           string
	Name         string
	DignifiedExt string
	ASCIIExt     string
	BinaryExt    string

	Grammar Grammar

	Quote          string
	AltRem         string
	LabelReportRem string
	DataSeparator  string
	Separator      string
	Equal          string
	PrintIns       string
	PrintAlt       string
	LoopBack       string
	FuncCall       string
	FuncReturn     string
	Newline        string

	VarLetters string
	VarChars   int
	VarMax     int
	VarMod     int

	MaxLineLength int
	Uppercase     bool

	shortVarRe   *regexp.Regexp
	reserved     map[string]bool
	stopWords    map[string]bool
	tight        map[string]bool
	replacements map[rune]rune
	translation  map[rune]rune
}

func newDescription(c classic) *Description {
	d := &Description{
		Quote:          `"`,
		AltRem:         "'",
		LabelReportRem: " '",
		DataSeparator:  ",",
		Separator:      ":",
		Equal:          "=",
		PrintIns:       "print",
		PrintAlt:       "?",
		LoopBack:       "goto",
		FuncCall:       "gosub",
		FuncReturn:     "return",
		Newline:        "\r\n",
		VarLetters:     "abcdefghijklmnopqrstuvwxyz",
		VarChars:       2,
		VarMax:         676,
		VarMod:         26,
		MaxLineLength:  256,
		shortVarRe:     regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]?$`),
		reserved:       map[string]bool{},
		stopWords:      map[string]bool{},
		tight:          map[string]bool{":": true, "_": true},
		replacements:   map[rune]rune{},
		translation:    map[rune]rune{},
	}

	addWords(d.reserved, c.instructions, c.jumps, c.dollarFuncs, c.functions, c.operators, c.reservedOnly, []string{"DATA"})
	addWords(d.stopWords, c.instructions, c.jumps, c.dollarFuncs, c.functions)
	for _, s := range c.symbols {
		if s != "#" {
			d.tight[s] = true
		}
	}

	d.Grammar = append(d.Grammar, genericPatterns...)
	d.Grammar = append(d.Grammar, dignifiedPatterns...)
	d.Grammar = append(d.Grammar,
		pattern(token.C_OPERATOR, words(c.operators)),
		pattern(token.C_SYMBOL, words(c.symbols)),
		pattern(token.C_EXT_SYMBOL, words(c.extSymbols)),
		pattern(token.C_FUNCTION, words(c.functions, c.dollarFuncs)),
		pattern(token.C_JUMP, words(c.jumps)),
		pattern(token.C_INSTRUCTION, words(c.instructions)),
		pattern(token.NUMBER, c.number),
		pattern(token.C_REM, `'|REM`),
		pattern(token.C_DATA, `DATA`),
		pattern(token.C_BLOCK_REM, `''`),
		pattern(token.C_PARTIAL, c.partial),
		pattern(token.C_SEPARATOR, `:`),
		pattern(token.C_QUOTE, `"`),
		identifierPattern,
	)
	return d
}

func addWords(set map[string]bool, lists ...[]string) {
	for _, l := range lists {
		for _, w := range l {
			if strings.HasSuffix(w, "#") {
				w = strings.TrimSuffix(w, "#")
				for _, n := range "0123456789" {
					set[w+string(n)] = true
				}
			}
			set[w] = true
		}
	}
}

// setTranslation maps the runes of original, in order, onto the target
// charset starting at first.
func (d *Description) setTranslation(original string, first rune, replacements map[rune]rune) {
	for i, r := range []rune(original) {
		d.translation[r] = first + rune(i)
	}
	for k, v := range replacements {
		d.replacements[k] = v
	}
}

// IsReserved reports whether v is a keyword of the dialect.
func (d *Description) IsReserved(v string) bool { return d.reserved[strings.ToUpper(v)] }

// IsStopWord reports whether v ends the backwards scan for the variables
// receiving a function's results.
func (d *Description) IsStopWord(v string) bool { return d.stopWords[strings.ToUpper(v)] }

// IsTight reports whether v is a symbol that needs no surrounding space.
func (d *Description) IsTight(v string) bool { return d.tight[v] }

// IsShortVar reports whether v is a valid classic variable name.
func (d *Description) IsShortVar(v string) bool { return d.shortVarRe.MatchString(v) }

// ShortName returns the classic name for an allocation slot.
func (d *Description) ShortName(slot int) string {
	letters := []rune(d.VarLetters)
	return string(letters[slot/d.VarMod]) + string(letters[slot%d.VarMod])
}

// Translate maps Unicode look-alikes in literal text to the target charset.
func (d *Description) Translate(text string) string {
	var b strings.Builder
	for _, r := range text {
		if rep, ok := d.replacements[r]; ok {
			r = rep
		}
		if tr, ok := d.translation[r]; ok {
			r = tr
		}
		b.WriteRune(r)
	}
	return b.String()
}

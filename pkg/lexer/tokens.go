package lexer

import (
	"fmt"
	"strings"

	"badig/pkg/dialect"
	"badig/pkg/token"
)

// Tokens lexes a short piece of code, such as generated classic statements,
// placing every token at pos. Blanks separate tokens and produce none.
// text comes from the dialect tables, so a character outside the grammar
// panics.
func Tokens(desc *dialect.Description, text string, pos token.Position) []token.Token {
	var toks []token.Token
	for text != "" {
		in := []rune(text + " ")
		partial := ""
		kind := token.ILLEGAL
		for _, r := range in {
			k, ok := desc.Grammar.Match(partial + string(r))
			if !ok {
				if partial == "" {
					partial = string(r)
				}
				break
			}
			partial += string(r)
			kind = k
		}

		if kind == token.ILLEGAL && strings.TrimSpace(partial) != "" {
			panic(fmt.Sprintf("lexer: %q not in the %s grammar", partial, desc.Name))
		}
		if value := strings.Trim(partial, " "); value != "" && kind != token.SPACES {
			toks = append(toks, token.New(kind, value, pos))
		}
		text = strings.TrimLeft(text[min(len(partial), len(text)):], " ")
	}
	return toks
}

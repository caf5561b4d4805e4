package dialect

import (
	"regexp"
	"strings"

	"badig/pkg/token"
)

// Pattern binds a token kind to an anchored, case-insensitive expression.
type Pattern struct {
	Kind token.Kind
	Re   *regexp.Regexp
}

// Grammar is an ordered pattern list; the first pattern that fully matches a
// candidate decides its kind.
type Grammar []Pattern

// Match returns the kind of the first pattern matching s entirely.
func (g Grammar) Match(s string) (token.Kind, bool) {
	for _, p := range g {
		if p.Re.MatchString(s) {
			return p.Kind, true
		}
	}
	return token.ILLEGAL, false
}

func pattern(k token.Kind, expr string) Pattern {
	return Pattern{Kind: k, Re: regexp.MustCompile(`(?i)^(?:` + expr + `)$`)}
}

// words builds an alternation of literal keywords. A trailing "#" on a word
// longer than one character stands for an optional digit suffix (USR0..USR9).
func words(list ...[]string) string {
	var alts []string
	for _, l := range list {
		for _, w := range l {
			if len(w) > 1 && strings.HasSuffix(w, "#") {
				alts = append(alts, regexp.QuoteMeta(strings.TrimSuffix(w, "#"))+`\d?`)
				continue
			}
			alts = append(alts, regexp.QuoteMeta(w))
		}
	}
	return strings.Join(alts, "|")
}

var genericPatterns = []Pattern{
	{Kind: token.NEWLINE, Re: regexp.MustCompile(`^\r+$`)},
	{Kind: token.SPACES, Re: regexp.MustCompile(`^[^\S\r\n]$`)},
}

var identifierPattern = pattern(token.IDENTIFIER, `[a-z][a-z_0-9]*[%!#$]?`)

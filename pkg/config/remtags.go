package config

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"badig/pkg/infolog"
	"badig/pkg/source"
	"badig/pkg/token"
)

// Remtags are settings written inside the program as `##BB:NAME=value`.
var remtagRe = regexp.MustCompile(`(?i)^\s*##BB:([a-z_0-9]+)=(.*)$`)

// RemtagHelp describes every known remtag, in display order.
var RemtagHelp = []struct{ Name, Help string }{
	{"EXPORT_FILE", "path of the converted file"},
	{"ARGUMENTS", "command line arguments, as typed after badig"},
	{"HELP", "print this list and stop"},
	{"TK_TOKENIZE", "tokenize the converted file (true/false)"},
	{"TK_LIST", "save a list file of the given width (0 to 32)"},
	{"TK_DEL_ASCII", "delete the ASCII file after tokenizing (true/false)"},
	{"TK_VERBOSE", "tokenizer verbosity (0 to 5)"},
}

// Remtag is one tag found in the source.
type Remtag struct {
	Name  string
	Value string
	Pos   token.Position
}

func knownRemtag(name string) bool {
	return slices.ContainsFunc(RemtagHelp, func(h struct{ Name, Help string }) bool {
		return h.Name == name
	})
}

// ReadRemtags collects the remtags of lines. Unknown names are warned about
// and left out.
func ReadRemtags(lines []source.Line, log *infolog.Logger) []Remtag {
	var tags []Remtag
	for _, l := range lines {
		m := remtagRe.FindStringSubmatch(l.Text)
		if m == nil {
			continue
		}
		name := strings.ToUpper(m[1])
		pos := token.NewPosition(l.Number, 1, l.Text, l.File, len(l.Text))
		if !knownRemtag(name) {
			log.Warning(pos, "Remtag not available: %s", name)
			continue
		}
		tags = append(tags, Remtag{Name: name, Value: strings.TrimSpace(m[2]), Pos: pos})
	}
	return tags
}

func (r Remtag) asBool() (bool, error) {
	switch strings.ToLower(r.Value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, infolog.Errorf(r.Pos, "Remtag must be true or false: %s = %s", r.Name, r.Value)
}

func (r Remtag) asInt() (int, error) {
	v, err := strconv.Atoi(r.Value)
	if err != nil {
		return 0, infolog.Errorf(r.Pos, "Remtag must be a number: %s = %s", r.Name, r.Value)
	}
	return v, nil
}

// RemtagArguments splits an ARGUMENTS value into flags. Long flags typed with
// a single dash get the second one.
func RemtagArguments(value string) []string {
	args := strings.Fields(value)
	for i, a := range args {
		if len(a) > 2 && a[0] == '-' && a[1] != '-' {
			args[i] = "-" + a
		}
	}
	return args
}

// Remtagged is what ApplyRemtags leaves for the caller.
type Remtagged struct {
	// Arguments are flags to parse over the settings.
	Arguments []string
	Help      bool
}

// ApplyRemtags sets the fields named by tags. Later tags win.
func (s *Settings) ApplyRemtags(tags []Remtag) (Remtagged, error) {
	var out Remtagged
	for _, r := range tags {
		var err error
		switch r.Name {
		case "EXPORT_FILE":
			s.Output = r.Value
		case "ARGUMENTS":
			out.Arguments = append(out.Arguments, RemtagArguments(r.Value)...)
		case "HELP":
			out.Help, err = r.asBool()
		case "TK_TOKENIZE":
			s.Tokenizer.Tokenize, err = r.asBool()
		case "TK_LIST":
			s.Tokenizer.List, err = r.asInt()
		case "TK_DEL_ASCII":
			s.Tokenizer.DelASCII, err = r.asBool()
		case "TK_VERBOSE":
			s.Tokenizer.Verbose, err = r.asInt()
		default:
			err = fmt.Errorf("remtag %s not handled", r.Name)
		}
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

package compiler

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"badig/pkg/source"
	"badig/pkg/token"
)

// Report is a text listing produced alongside the classic code.
type Report struct {
	Kind  string
	Lines []string
}

// TokenReport lists toks one per line. kind is "lexer" or "parser".
func TokenReport(kind, file string, toks []token.Token) Report {
	lines := []string{
		fmt.Sprintf("%s %s output", filepath.Base(file), kind),
		fmt.Sprintf("%d tokens", len(toks)),
		"",
	}
	for _, t := range toks {
		lines = append(lines, t.String())
	}
	return Report{Kind: kind, Lines: lines}
}

// VariablesReport lists "short:long", last allocated first.
func VariablesReport(vars map[string]string) Report {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if vars[keys[i]] != vars[keys[j]] {
			return vars[keys[i]] > vars[keys[j]]
		}
		return keys[i] > keys[j]
	})

	lines := []string{fmt.Sprintf("%d variables assigned", len(keys)), ""}
	for _, k := range keys {
		lines = append(lines, vars[k]+":"+qualifiedName(k))
	}
	return Report{Kind: "variables", Lines: lines}
}

// LinesReport lists "classic - dignified" line pairs.
func LinesReport(info []LineInfo) Report {
	lines := []string{fmt.Sprintf("%d lines generated.", len(info)), "(Classic - Dignified)", ""}
	for _, l := range info {
		src := "Auto generated"
		if l.Source != 0 {
			src = strconv.Itoa(l.Source)
		}
		lines = append(lines, fmt.Sprintf("%d - %s", l.Number, src))
	}
	return Report{Kind: "lines", Lines: lines}
}

// Path is where the report is saved for the given output file.
func (r Report) Path(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + "_" + r.Kind + ".txt"
}

func (r Report) Write(w io.Writer) error {
	for _, l := range r.Lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(l, " \r\n")); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the report next to output and returns its path.
func (r Report) Save(output string) (string, error) {
	path := r.Path(output)
	return path, source.Save(path, r.Lines, source.UTF8, "\n")
}

package config

import (
	"strconv"

	"github.com/spf13/pflag"
)

// offValue is a boolean flag that clears its target when given.
type offValue struct{ p *bool }

func (v offValue) String() string {
	if v.p == nil {
		return "false"
	}
	return strconv.FormatBool(!*v.p)
}

func (v offValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*v.p = !b
	return nil
}

func (v offValue) Type() string { return "bool" }

// BindFlags registers the conversion flags on fs, defaulting to and writing
// into s.
func BindFlags(fs *pflag.FlagSet, s *Settings) {
	fs.StringVar(&s.SystemID, "id", s.SystemID, "Basic system to use")
	fs.IntVar(&s.TabLength, "tl", s.TabLength, "amount of spaces per TAB")
	fs.IntVar(&s.LineStart, "ls", s.LineStart, "starting line")
	fs.IntVar(&s.LineStep, "lp", s.LineStep, "line steps")
	fs.AddFlag(&pflag.Flag{
		Name:        "rh",
		Usage:       "remove the info REM header",
		Value:       offValue{&s.RemHeader},
		DefValue:    "false",
		NoOptDefVal: "true",
	})
	fs.BoolVar(&s.StripSpaces, "ss", s.StripSpaces, "strip all spaces")
	fs.BoolVar(&s.CapitaliseAll, "ca", s.CapitaliseAll, "capitalize everything outside strings and remarks")
	fs.BoolVar(&s.Translate, "tr", s.Translate, "translate Unicode characters to similar native ones")
	fs.StringVar(&s.ConvertPrint, "cp", s.ConvertPrint, "convert PRINT to ? (?) or ? to PRINT (p)")
	fs.StringVar(&s.StripThenGoto, "tg", s.StripThenGoto, "remove THEN/ELSE before GOTO (t) or GOTO after THEN/ELSE (g)")
	fs.IntVarP(&s.Verbosity, "vb", "v", s.Verbosity, "verbosity: 0 silent, 1 errors, 2 warnings, 3 steps, 4 details, 5 all")

	fs.BoolVar(&s.PrintReport, "prr", s.PrintReport, "print the reports instead of saving them")
	fs.BoolVar(&s.LabelReport, "lbr", s.LabelReport, "show label names as REM on the converted code")
	fs.BoolVar(&s.LineReport, "lnr", s.LineReport, "line correspondence report")
	fs.BoolVar(&s.VarReport, "var", s.VarReport, "variable substitution report")
	fs.BoolVar(&s.LexerReport, "lex", s.LexerReport, "lexer tokens report")
	fs.BoolVar(&s.ParserReport, "par", s.ParserReport, "parser tokens report")

	fs.StringVar(&s.Tokenizer.Command, "tokenizer", s.Tokenizer.Command, "external tokenizer executable")
	fs.BoolVar(&s.Tokenizer.Tokenize, "tk_tokenize", s.Tokenizer.Tokenize, "tokenize the converted file")
	fs.IntVar(&s.Tokenizer.List, "tk_list", s.Tokenizer.List, "tokenizer list file width (0 to 32)")
	fs.Lookup("tk_list").NoOptDefVal = "16"
	fs.BoolVar(&s.Tokenizer.DelASCII, "tk_del_ascii", s.Tokenizer.DelASCII, "delete the ASCII file after tokenizing")
	fs.IntVar(&s.Tokenizer.Verbose, "tk_verbose", s.Tokenizer.Verbose, "tokenizer verbosity (0 to 5)")
}

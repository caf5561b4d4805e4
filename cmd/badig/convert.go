package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"badig/pkg/compiler"
	"badig/pkg/config"
	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/source"
	"badig/pkg/tools"
	"badig/pkg/utils"
)

func printRemtags(w io.Writer) {
	fmt.Fprintln(w, "Remtags, written as ##BB:NAME=value on their own line:")
	for _, r := range config.RemtagHelp {
		fmt.Fprintf(w, "  %-14s %s\n", r.Name, r.Help)
	}
}

// convert runs one conversion with the settings gathered so far. Failures
// are printed through the logger and reported as errReported.
func convert(ctx context.Context, cmd *cobra.Command, s *config.Settings) error {
	out := cmd.OutOrStdout()
	log := infolog.New(out, s.Verbosity)
	fail := func(err error) error {
		log.Fatal(err)
		return errReported
	}

	input, _, err := utils.GetPathInfo(s.Input)
	if err != nil {
		return fail(err)
	}

	loader := source.NewFileLoader(s.Encoding(), s.TabLength)
	lines, err := loader.Load(input)
	if err != nil {
		return fail(err)
	}

	tagged, err := s.ApplyRemtags(config.ReadRemtags(lines, log))
	if err != nil {
		return fail(err)
	}
	if tagged.Help {
		printRemtags(out)
		return nil
	}
	if len(tagged.Arguments) > 0 {
		if err := cmd.Flags().Parse(tagged.Arguments); err != nil {
			return fail(infolog.Failf("Remtag ARGUMENTS: %v", err))
		}
	}
	if err := s.Validate(); err != nil {
		return fail(err)
	}
	log = infolog.New(out, s.Verbosity)

	// The arguments may change how the file reads.
	if loader.Encoding != s.Encoding() || loader.TabLength != s.TabLength {
		loader = source.NewFileLoader(s.Encoding(), s.TabLength)
		if lines, err = loader.Load(input); err != nil {
			return fail(err)
		}
	}

	d, err := dialect.New(s.SystemID)
	if err != nil {
		return fail(err)
	}
	desc := d.Description()
	log.Main("Basic Dignified: %s", desc.Name)
	log.Main("Converting: %s", filepath.Base(input))

	res, err := compiler.New(d, loader, log, s.Options()).CompileLines(ctx, input, lines)
	if err != nil {
		return fail(err)
	}

	output := utils.SaveFile(input, s.Output, desc.ASCIIExt)
	if err := source.Save(output, res.Code, source.Latin1, desc.Newline); err != nil {
		return fail(err)
	}
	log.Main("Saved: %s", output)

	if err := writeReports(out, log, s, res, input, output); err != nil {
		return fail(err)
	}

	if !s.Tokenizer.Tokenize {
		return nil
	}
	tk := tools.ExecTokenizer{Command: s.Tokenizer.Command, Args: s.Tokenizer.Args}
	job := tools.NewJob(output, desc.BinaryExt, s.Tokenizer.List, s.Tokenizer.DelASCII, s.Tokenizer.Verbose)
	if err := tools.Handoff(ctx, tk, job, log); err != nil {
		return fail(err)
	}
	return nil
}

func writeReports(w io.Writer, log *infolog.Logger, s *config.Settings, res *compiler.Result, input, output string) error {
	var reports []compiler.Report
	if s.LineReport {
		reports = append(reports, compiler.LinesReport(res.Lines))
	}
	if s.VarReport {
		reports = append(reports, compiler.VariablesReport(res.Vars))
	}
	if s.LexerReport {
		reports = append(reports, compiler.TokenReport("lexer", input, res.Lexed))
	}
	if s.ParserReport {
		reports = append(reports, compiler.TokenReport("parser", input, res.Parsed))
	}

	for _, r := range reports {
		if s.PrintReport {
			if err := r.Write(w); err != nil {
				return err
			}
			fmt.Fprintln(w)
			continue
		}
		path, err := r.Save(output)
		if err != nil {
			return err
		}
		log.Sub("Report saved: %s", path)
	}
	return nil
}

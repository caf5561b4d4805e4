package main

import (
	"github.com/spf13/cobra"

	"badig/pkg/config"
	"badig/pkg/dialect"
	"badig/pkg/infolog"
	"badig/pkg/reverse"
	"badig/pkg/source"
	"badig/pkg/utils"
)

func newReverseCmd(s *config.Settings) *cobra.Command {
	opts := reverse.DefaultOptions()
	indent := true

	cmd := &cobra.Command{
		Use:   "reverse input [output]",
		Short: "Convert a classic line-numbered listing into dignified code",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) > 1 {
				output = args[1]
			}
			if !indent {
				opts.Indent = ""
			}
			return dignify(cmd, s, args[0], output, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.KeepCase, "kc", false, "keep the case of keywords and variables")
	f.BoolVar(&opts.Split, "sc", false, "put every statement on its own line")
	f.BoolVar(&opts.BlankLine, "bl", opts.BlankLine, "blank line before each label")
	f.BoolVar(&indent, "in", indent, "indent code under the labels")
	return cmd
}

// dignify converts a classic listing with the settings' dialect, encoding
// and tab length.
func dignify(cmd *cobra.Command, s *config.Settings, input, output string, opts reverse.Options) error {
	log := infolog.New(cmd.OutOrStdout(), s.Verbosity)
	fail := func(err error) error {
		log.Fatal(err)
		return errReported
	}

	if err := s.Validate(); err != nil {
		return fail(err)
	}
	input, _, err := utils.GetPathInfo(input)
	if err != nil {
		return fail(err)
	}
	d, err := dialect.New(s.SystemID)
	if err != nil {
		return fail(err)
	}
	desc := d.Description()

	lines, err := source.NewFileLoader(s.Encoding(), s.TabLength).Load(input)
	if err != nil {
		return fail(err)
	}
	log.Main("Basic Dignified: %s", desc.Name)
	log.Main("Dignifying: %s", input)

	code, err := reverse.New(d, log, opts).Convert(lines)
	if err != nil {
		return fail(err)
	}

	path := utils.SaveFile(input, output, desc.DignifiedExt)
	if err := source.Save(path, code, s.Encoding(), "\n"); err != nil {
		return fail(err)
	}
	log.Main("Saved: %s", path)
	return nil
}

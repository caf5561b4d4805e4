// Command badig converts Basic Dignified programs into classic line-numbered
// Basic.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"badig/pkg/config"
)

// errReported is returned once the failure has already been printed.
var errReported = errors.New("conversion stopped")

func main() {
	path := os.Getenv("BADIG_CONFIG")
	if path == "" {
		path = config.DefaultFile
	}
	s, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(&s, path).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd(s *config.Settings, configPath string) *cobra.Command {
	root := &cobra.Command{
		Use:   "badig [input] [output]",
		Short: "Write classic 8 bit Basic the modern way",
		Long: `Basic Dignified converts programs written with labels, long variable
names, defines and structured blocks into classic line-numbered Basic.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				s.Input = args[0]
			}
			if len(args) > 1 {
				s.Output = args[1]
			}
			if s.Input == "" {
				return cmd.Help()
			}
			return convert(cmd.Context(), cmd, s)
		},
	}
	config.BindFlags(root.PersistentFlags(), s)

	root.AddCommand(&cobra.Command{
		Use:   "remtags",
		Short: "List the remtags understood in the source",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printRemtags(cmd.OutOrStdout())
		},
	})

	root.AddCommand(newReverseCmd(s))

	root.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the current settings to " + configPath,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Validate(); err != nil {
				return err
			}
			if err := s.Save(configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings saved: %s\n", configPath)
			return nil
		},
	})
	return root
}

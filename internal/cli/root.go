// Package cli defines the command-line interface of the tape calculator.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tapecalc/internal/observability"
)

// Options stores global CLI options shared between commands.
type Options struct {
	LogLevel string
	Trace    bool
}

// Execute builds the root command, runs it with the provided args and
// streams, and returns any error.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	opts := &Options{LogLevel: "warn"}

	rootCmd := newRootCommand(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "calc",
		Short:         "calc is a four-function tape calculator",
		Long:          "calc drives a four-function calculator from key presses. Operations chain left to right without precedence, and the tape shows the chain typed so far.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := observability.InitLogger(opts.LogLevel, "console"); err != nil {
				return err
			}
			observability.Logger.Debug("logger initialized", zap.String("level", opts.LogLevel))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			observability.SyncLogger()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.Trace, "trace", false, "Print display and tape after every key")

	cmd.AddCommand(
		newPressCommand(opts),
		newRunCommand(opts),
		newReplCommand(opts),
	)

	return cmd
}

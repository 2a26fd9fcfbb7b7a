package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tapecalc/internal/calculator"
	"tapecalc/internal/observability"
)

func newPressCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "press KEY...",
		Short: "Apply keys to a fresh calculator and print the result",
		Long:  "Keys: 0-9, + - * /, =, '.', +/- (or neg), < (or bs), c (or clear).",
		Example: `  calc press 1 0 0 + 1 0 / 1 0 =
  calc press --trace 1 / 0 =`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pressKeys(cmd, opts, args)
		},
	}
}

// pressKeys runs keys on a new session and prints the outcome.
func pressKeys(cmd *cobra.Command, opts *Options, keys []string) error {
	out := cmd.OutOrStdout()
	session := calculator.NewSession(newTerminalView(out, opts.Trace))

	outcomes, err := session.PressKeys(keys...)
	for i, o := range outcomes {
		observability.Logger.Debug("key applied",
			zap.String("key", keys[i]),
			zap.String("outcome", o.String()),
		)
	}
	if err != nil {
		return err
	}

	if !opts.Trace {
		printSession(out, session)
	}
	return nil
}

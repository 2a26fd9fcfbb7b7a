package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tapecalc/internal/calculator"
)

func newReplCommand(_ *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Type keys interactively, one line at a time",
		Long:  "Each line holds whitespace-separated keys. The display and tape are printed after every line. 'q' or 'quit' exits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			session := calculator.NewSession(nil)
			printSession(out, session)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				keys := strings.Fields(scanner.Text())
				if len(keys) == 1 && (keys[0] == "q" || keys[0] == "quit") {
					return nil
				}
				if len(keys) == 0 {
					continue
				}

				if _, err := session.PressKeys(keys...); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				}
				printSession(out, session)
			}
			return scanner.Err()
		},
	}
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ErrNoText is returned when echo is run without any text.
var ErrNoText = errors.New("no text provided to echo")

func newEchoCmd() *cobra.Command {
	var (
		uppercase bool
		repeat    int
	)

	cmd := &cobra.Command{
		Use:   "echo [text...]",
		Short: "Print text to the console",
		Long: `Print text to the console.

Examples:
  echo hello world
  echo hello -u
  echo hello --repeat 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return ErrNoText
			}
			if uppercase {
				text = strings.ToUpper(text)
			}

			// A count below one prints nothing
			out := cmd.OutOrStdout()
			for i := 0; i < repeat; i++ {
				fmt.Fprintln(out, text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&uppercase, "uppercase", "u", false, "Convert text to uppercase")
	cmd.Flags().IntVarP(&repeat, "repeat", "r", 1, "Number of times to print the text")
	return cmd
}

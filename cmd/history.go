package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vstratful/rshell/internal/tui"
)

func newHistoryCmd(sh *shell) *cobra.Command {
	var (
		last     int
		clearAll bool
		pick     bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show, search or clear command history",
		Long: `Show previously entered commands, oldest first.

Examples:
  history           # Show every stored command
  history -n 10     # Show the last 10 commands
  history --pick    # Choose a previous command and run it
  history --clear   # Forget all stored commands`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console := tui.NewConsole(cmd.OutOrStdout())

			switch {
			case clearAll:
				sh.history.Clear()
				if err := sh.history.Err(); err != nil {
					return fmt.Errorf("failed to clear history: %w", err)
				}
				console.Write("History cleared.")
				return nil

			case pick:
				return sh.pickAndRun(console)
			}

			if cmd.Flags().Changed("lines") && last < 1 {
				return fmt.Errorf("invalid line count %d: must be at least 1", last)
			}
			printHistory(console, sh.history.Entries(), last)
			return nil
		},
	}

	cmd.Flags().IntVarP(&last, "lines", "n", 0, "Show only the last N commands")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Remove every stored command")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose a previous command interactively and run it")
	cmd.MarkFlagsMutuallyExclusive("clear", "pick", "lines")
	return cmd
}

// printHistory prints entries numbered from 1, limited to the last n when n
// is positive.
func printHistory(console *tui.Console, entries []string, n int) {
	start := 0
	if n > 0 && n < len(entries) {
		start = len(entries) - n
	}
	for i := start; i < len(entries); i++ {
		console.Write(tui.HelpStyle.Render(fmt.Sprintf("%5d", i+1)) + "  " + entries[i])
	}
}

// pickAndRun lets the user choose a stored command, records it and runs it.
func (s *shell) pickAndRun(console *tui.Console) error {
	entries := s.history.Entries()
	if len(entries) == 0 {
		console.Write("No history yet.")
		return nil
	}

	command, err := s.pick(entries)
	if err != nil {
		return fmt.Errorf("history picker failed: %w", err)
	}
	if command == "" {
		return nil
	}

	console.MarkupLine("[dim]" + tui.Escape(command) + "[/]")
	s.history.Add(command)

	if isExitWord(command) || strings.EqualFold(command, "help") {
		console.Warning(fmt.Sprintf("%q can only be typed at the prompt", command))
		return nil
	}
	s.execute(command)
	return nil
}

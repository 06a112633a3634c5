package cmd

import (
	"fmt"
	"strings"

	"github.com/vstratful/rshell/internal/tui"
)

// Command is a help entry for the REPL.
type Command struct {
	Name        string
	Description string
}

// availableCommands returns the built-in commands followed by the REPL words.
func availableCommands(sh *shell) []Command {
	var commands []Command
	for _, c := range newCommandTree(sh).Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		commands = append(commands, Command{Name: c.Name(), Description: c.Short})
	}
	return append(commands,
		Command{Name: "help", Description: "Show this help"},
		Command{Name: "exit, quit, q", Description: "Leave the shell"},
	)
}

// helpMarkdown formats the command list as a markdown table.
func helpMarkdown(commands []Command) string {
	var b strings.Builder
	b.WriteString("# Available commands\n\n")
	b.WriteString("| Command | Description |\n")
	b.WriteString("| --- | --- |\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "| `%s` | %s |\n", c.Name, c.Description)
	}
	b.WriteString("\nRun `<command> --help` for flags. Use the up and down arrows to recall previous commands.\n")
	return b.String()
}

func (s *shell) printHelp() {
	md := helpMarkdown(availableCommands(s))

	renderer, err := tui.NewMarkdownRenderer(s.width())
	if err == nil {
		var rendered string
		if rendered, err = renderer.Render(md); err == nil {
			fmt.Fprint(s.out, rendered)
			return
		}
	}

	// Fall back to the raw markdown
	fmt.Fprint(s.out, md)
}

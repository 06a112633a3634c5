package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vstratful/rshell/internal/history"
	"github.com/vstratful/rshell/internal/lineedit"
	"github.com/vstratful/rshell/internal/tui"
)

// exitWords end the REPL. Matching is case-insensitive.
var exitWords = []string{"exit", "quit", "q"}

// lineReader reads one line of input with history navigation.
type lineReader interface {
	ReadLine(prompt string, h lineedit.History) (string, error)
}

// shell holds the state of an interactive session.
type shell struct {
	history *history.Store
	reader  lineReader
	console *tui.Console
	out     io.Writer
	errOut  io.Writer

	getwd func() (string, error)
	width func() int

	// pick shows the history picker and returns the chosen command.
	pick func(entries []string) (string, error)
}

func newShell(store *history.Store, reader lineReader, out, errOut io.Writer) *shell {
	return &shell{
		history: store,
		reader:  reader,
		console: tui.NewConsole(out),
		out:     out,
		errOut:  errOut,
		getwd:   os.Getwd,
		width:   func() int { return 0 },
		pick:    runHistoryPicker,
	}
}

// run is the read-eval-print loop. It returns nil on an exit word or end of
// input, and an error only when the terminal itself fails.
func (s *shell) run() error {
	s.console.MarkupLine("[bold blue]rShell[/] - Interactive REPL")
	s.console.MarkupLine("Type [yellow]exit[/] or [yellow]quit[/] to leave, [yellow]help[/] for available commands.")
	s.console.Write("")

	for {
		line, err := s.reader.ReadLine(s.prompt(), s.history)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.console.Write("")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if isExitWord(input) {
			s.console.Color("Goodbye!", "yellow")
			return nil
		}

		if strings.EqualFold(input, "help") {
			s.printHelp()
			continue
		}

		s.execute(input)
	}
}

// execute runs one command line through a fresh command tree. Failures are
// reported and never end the session.
func (s *shell) execute(input string) {
	root := newCommandTree(s)
	root.SetArgs(strings.Fields(input))

	if err := root.Execute(); err != nil {
		s.console.Error(fmt.Sprintf("Command failed: %v", err))
	}
}

// prompt builds the markup prompt showing the current directory name.
func (s *shell) prompt() string {
	dir := "?"
	if cwd, err := s.getwd(); err == nil {
		dir = filepath.Base(cwd)
	}
	return "[bold green]rShell>[/] [dim]" + tui.Escape(dir) + "[/]> "
}

func isExitWord(input string) bool {
	for _, w := range exitWords {
		if strings.EqualFold(input, w) {
			return true
		}
	}
	return false
}

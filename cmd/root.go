package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vstratful/rshell/internal/config"
	"github.com/vstratful/rshell/internal/history"
	"github.com/vstratful/rshell/internal/lineedit"
	"github.com/vstratful/rshell/internal/tui"
)

// version is set at build time via -ldflags.
var version = "dev"

// newRootCmd builds the rshell command. Without arguments it starts the
// interactive shell; with arguments it runs a single built-in and exits.
func newRootCmd(sh *shell) *cobra.Command {
	root := newCommandTree(sh)
	root.Long = `rShell is a minimal interactive shell with persistent command history
and arrow-key line editing.

Examples:
  rshell                  # Interactive shell
  rshell echo "hi" -r 3   # Run a single command and exit
  rshell ls -la           # List the current directory
  rshell history -n 20    # Show the last 20 commands`
	root.Version = version
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return sh.run()
	}
	return root
}

// newCommandTree builds the built-in command set. The REPL builds a fresh
// tree for every line so flag values never carry over between commands.
func newCommandTree(sh *shell) *cobra.Command {
	root := &cobra.Command{
		Use:           "rshell",
		Short:         "A minimal interactive shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(sh.out)
	root.SetErr(sh.errOut)

	root.AddCommand(
		newEchoCmd(),
		newLsCmd(),
		newHistoryCmd(sh),
		newUpdateCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	cfg := loadConfig(os.Stderr)

	histPath, err := cfg.HistoryPath()
	if err != nil {
		// No home directory: keep history in memory only
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		histPath = ""
	}

	// Load and save failures stay inside the store; the shell keeps working
	// with in-memory history
	store := history.New(histPath, cfg.HistorySize)

	sh := newShell(store, newLineReader(os.Stdin, os.Stdout), os.Stdout, os.Stderr)
	sh.width = terminalWidth

	root := newRootCmd(sh)
	if err := root.Execute(); err != nil {
		tui.NewConsole(os.Stderr).Error(err.Error())
		return err
	}
	return nil
}

// loadConfig reads the config file. On first run it writes the defaults so
// the settings are easy to find; a broken file falls back to the defaults.
func loadConfig(errOut io.Writer) *config.Config {
	firstRun := !config.Exists()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(errOut, "Warning: %v, using defaults\n", err)
		return &config.Config{HistorySize: config.DefaultHistorySize}
	}

	if firstRun {
		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(errOut, "Warning: failed to save config: %v\n", err)
		}
	}
	return cfg
}

// newLineReader picks the raw-mode editor for terminals and a plain line
// reader for pipes and files.
func newLineReader(in *os.File, out io.Writer) lineReader {
	if lineedit.IsTerminal(in) {
		return lineedit.New(lineedit.NewTTY(in, out))
	}
	return lineedit.NewLineReader(in, out)
}

// terminalWidth returns the width of stdout, falling back to the default.
func terminalWidth() int {
	if w := lineedit.NewTTY(os.Stdin, os.Stdout).Width(); w > 0 {
		return w
	}
	return config.DefaultTerminalWidth
}

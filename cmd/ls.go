package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vstratful/rshell/internal/tui"
)

type lsOptions struct {
	long      bool
	all       bool
	recursive bool
}

func newLsCmd() *cobra.Command {
	var opts lsOptions

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List directory contents",
		Long: `List the entries of a directory, the current one by default.

Examples:
  ls
  ls -la /tmp
  ls -r src`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return listDir(cmd.OutOrStdout(), dir, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.long, "long", "l", false, "Use a long listing format")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Show entries starting with .")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "List subdirectories recursively")
	return cmd
}

// listDir prints the entries of dir. With recursive set every directory is
// introduced by a "path:" header and its subdirectories follow it.
func listDir(out io.Writer, dir string, opts lsOptions) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	console := tui.NewConsole(out)
	return walkDir(console, dir, opts, true)
}

func walkDir(console *tui.Console, dir string, opts lsOptions, first bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", dir, err)
	}

	var visible []os.DirEntry
	for _, e := range entries {
		if !opts.all && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		visible = append(visible, e)
	}

	if opts.recursive {
		if !first {
			console.Write("")
		}
		console.Write(dir + ":")
	}

	if opts.long {
		printLong(console, visible)
	} else {
		for _, e := range visible {
			console.Write(displayName(e))
		}
	}

	if !opts.recursive {
		return nil
	}
	for _, e := range visible {
		if !e.IsDir() {
			continue
		}
		if err := walkDir(console, filepath.Join(dir, e.Name()), opts, false); err != nil {
			console.Warning(err.Error())
		}
	}
	return nil
}

func printLong(console *tui.Console, entries []os.DirEntry) {
	rows := [][]string{{"Mode", "Size", "Modified", "Name"}}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		size := strconv.FormatInt(info.Size(), 10)
		if e.IsDir() {
			size = "-"
		}
		rows = append(rows, []string{
			info.Mode().String(),
			size,
			info.ModTime().Format("Jan 02 15:04"),
			displayName(e),
		})
	}

	if len(rows) == 1 {
		return
	}
	console.Grid(rows)
}

func displayName(e os.DirEntry) string {
	if e.IsDir() {
		return tui.DirStyle.Render(e.Name() + "/")
	}
	return e.Name()
}

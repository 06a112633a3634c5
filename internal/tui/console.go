package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Console writes user-facing shell output.
type Console struct {
	out io.Writer
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Write prints message verbatim followed by a newline.
func (c *Console) Write(message string) {
	fmt.Fprintln(c.out, message)
}

// Markup prints rendered markup without a trailing newline.
func (c *Console) Markup(markup string) {
	fmt.Fprint(c.out, Render(markup))
}

// MarkupLine prints rendered markup followed by a newline.
func (c *Console) MarkupLine(markup string) {
	fmt.Fprintln(c.out, Render(markup))
}

// Color prints message in the given markup colour, e.g. "yellow".
func (c *Console) Color(message, color string) {
	c.MarkupLine("[" + color + "]" + Escape(message) + "[/]")
}

// Warning prints a warning line.
func (c *Console) Warning(message string) {
	fmt.Fprintln(c.out, WarningStyle.Render("Warning:")+" "+message)
}

// Error prints an error line.
func (c *Console) Error(message string) {
	fmt.Fprintln(c.out, ErrorStyle.Render("Error:")+" "+message)
}

// Grid prints rows as a table. The first row holds the headers.
func (c *Console) Grid(rows [][]string) {
	if len(rows) == 0 {
		c.Write("No data to display")
		return
	}
	fmt.Fprintln(c.out, NewGrid(rows[0], rows[1:]).Render())
}

// NewGrid builds a bordered table with the shell's grid styles.
func NewGrid(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(GridBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return GridHeaderStyle
			}
			return GridCellStyle
		}).
		Headers(headers...).
		Rows(rows...)
}

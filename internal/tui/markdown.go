package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/vstratful/rshell/internal/config"
)

// MarkdownRenderer wraps glamour for rendering markdown to styled terminal output.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a markdown renderer wrapping at width columns.
// A non-positive width uses the default terminal width.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = config.DefaultTerminalWidth
	}

	// A fixed style skips terminal background detection, which would read
	// from stdin while the line editor owns it
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &MarkdownRenderer{renderer: renderer}, nil
}

// Render renders markdown content to styled terminal output.
func (m *MarkdownRenderer) Render(content string) (string, error) {
	return m.renderer.Render(content)
}

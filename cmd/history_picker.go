package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vstratful/rshell/internal/tui/picker"
)

// runHistoryPicker shows the history picker and returns the chosen command,
// or an empty string when the user cancels.
func runHistoryPicker(entries []string) (string, error) {
	model := picker.NewHistoryPicker(entries, 0, 0)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	if m, ok := finalModel.(picker.Model); ok && m.Selected != nil {
		command, _ := picker.GetHistoryCommand(m.Selected)
		return command, nil
	}
	return "", nil
}

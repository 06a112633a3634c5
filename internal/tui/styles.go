// Package tui provides terminal UI components.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Console styles
var (
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Table styles used by Grid and ls -l
	GridHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	GridCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	GridBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))

	DirStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// Picker styles
var (
	TitleStyle        = lipgloss.NewStyle().MarginLeft(2)
	ItemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	SelectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	PaginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	HelpListStyle     = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

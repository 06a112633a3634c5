// Package picker provides a filterable list picker built on bubbles/list.
package picker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vstratful/rshell/internal/tui"
)

// Item is the interface for items that can be displayed in a picker.
type Item interface {
	list.Item
	Title() string
	Description() string
}

// ItemDelegate renders items in the picker list.
type ItemDelegate struct{}

func (d ItemDelegate) Height() int                             { return 2 }
func (d ItemDelegate) Spacing() int                            { return 1 }
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(Item)
	if !ok {
		return
	}

	title := i.Title()
	desc := i.Description()

	if index == m.Index() {
		title = tui.SelectedItemStyle.Render("> " + title)
		desc = tui.SelectedItemStyle.Render("  " + desc)
	} else {
		title = tui.ItemStyle.Render(title)
		desc = tui.ItemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// Model is the Bubble Tea model for a picker. Selection is reported through
// Selected once the user presses enter; Quitting is set on cancel.
type Model struct {
	List     list.Model
	Width    int
	Height   int
	Selected list.Item
	Quitting bool
}

// Config holds configuration for creating a new picker.
type Config struct {
	Title  string
	Items  []list.Item
	Width  int
	Height int
}

// New creates a new picker Model.
func New(cfg Config) Model {
	l := list.New(cfg.Items, ItemDelegate{}, cfg.Width, max(cfg.Height-2, 0))
	l.Title = cfg.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = tui.TitleStyle
	l.Styles.PaginationStyle = tui.PaginationStyle
	l.Styles.HelpStyle = tui.HelpListStyle

	return Model{
		List:   l,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// Init initializes the picker.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.SetWidth(msg.Width)
		m.List.SetHeight(max(msg.Height-2, 0))
		return m, nil

	case tea.KeyMsg:
		// While filtering, keys belong to the filter input
		if m.IsFiltering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit

		case "enter":
			m.Selected = m.List.SelectedItem()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	if m.Quitting || m.Selected != nil {
		return ""
	}
	return m.List.View()
}

// IsFiltering returns true if the picker is in filter mode.
func (m Model) IsFiltering() bool {
	return m.List.FilterState() == list.Filtering
}

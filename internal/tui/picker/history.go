package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
)

// HistoryItem is a single recorded command shown in the history picker.
type HistoryItem struct {
	Index   int // 1-based position in the history, oldest first
	Command string
}

func (i HistoryItem) Title() string {
	return i.Command
}

func (i HistoryItem) Description() string {
	return fmt.Sprintf("#%d", i.Index)
}

func (i HistoryItem) FilterValue() string {
	return i.Command
}

// NewHistoryPicker creates a picker over history entries with the newest
// command listed first.
func NewHistoryPicker(entries []string, width, height int) Model {
	items := make([]list.Item, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		items = append(items, HistoryItem{Index: i + 1, Command: entries[i]})
	}

	return New(Config{
		Title:  "Run a previous command",
		Items:  items,
		Width:  width,
		Height: height,
	})
}

// GetHistoryCommand extracts the command from a selected item.
func GetHistoryCommand(item list.Item) (string, bool) {
	if hi, ok := item.(HistoryItem); ok {
		return hi.Command, true
	}
	return "", false
}

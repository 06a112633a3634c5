// Package lineedit reads a line of input from a raw-mode terminal with
// cursor movement, in-place editing and history recall.
package lineedit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/vstratful/rshell/internal/tui"
)

// History is the command history browsed with the up and down keys.
type History interface {
	Add(command string)
	Previous() string
	Next() string
	ResetCursor()
}

// Terminal is the surface the editor draws on and reads keys from.
type Terminal interface {
	// ReadKey blocks until the next key press.
	ReadKey() (Event, error)

	// Write sends text and control sequences to the terminal.
	Write(s string) error

	// MakeRaw switches the terminal to raw mode and returns a function
	// restoring the previous mode.
	MakeRaw() (restore func() error, err error)
}

// Editor reads lines from a Terminal.
type Editor struct {
	term Terminal
}

// New creates an Editor drawing on term.
func New(term Terminal) *Editor {
	return &Editor{term: term}
}

// ReadLine shows prompt and edits a line until Enter or Ctrl+C.
//
// The prompt may contain markup tags; they are rendered for display and
// excluded from cursor column math. On Enter the line is returned and, if
// not blank, added to h. Ctrl+C returns an empty string and leaves h
// untouched. A non-nil error means the terminal failed; the io.EOF from an
// exhausted key source is passed through unwrapped.
func (e *Editor) ReadLine(prompt string, h History) (line string, err error) {
	h.ResetCursor()

	restore, err := e.term.MakeRaw()
	if err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = fmt.Errorf("failed to restore terminal: %w", rerr)
		}
	}()

	s := &session{term: e.term, prompt: prompt, history: h}
	if err := e.term.Write(tui.Render(prompt)); err != nil {
		return "", err
	}

	for {
		ev, err := e.term.ReadKey()
		if err != nil {
			return "", err
		}

		done, err := s.handle(ev)
		if err != nil {
			return "", err
		}
		if done {
			return s.result, nil
		}
	}
}

// session is the state of a single ReadLine call.
type session struct {
	term    Terminal
	prompt  string
	history History
	buf     Buffer
	result  string
}

// handle applies one key event. It reports whether the line is finished.
func (s *session) handle(ev Event) (bool, error) {
	switch ev.Key {
	case KeyEnter:
		s.result = s.buf.String()
		if strings.TrimSpace(s.result) != "" {
			s.history.Add(s.result)
		}
		return true, s.term.Write("\r\n")

	case KeyUp:
		s.buf.Set(s.history.Previous())
		return false, s.redraw()

	case KeyDown:
		s.buf.Set(s.history.Next())
		return false, s.redraw()

	case KeyLeft:
		s.buf.Left()
		return false, s.moveCursor()

	case KeyRight:
		s.buf.Right()
		return false, s.moveCursor()

	case KeyHome:
		s.buf.Home()
		return false, s.moveCursor()

	case KeyEnd:
		s.buf.End()
		return false, s.moveCursor()

	case KeyBackspace:
		if s.buf.Backspace() {
			return false, s.redraw()
		}

	case KeyDelete:
		if s.buf.Delete() {
			return false, s.redraw()
		}

	case KeyRune:
		if ev.IsInterrupt() {
			s.result = ""
			return true, s.term.Write("\r\n")
		}
		if ev.IsPrintable() {
			s.buf.Insert(ev.Rune)
			return false, s.redraw()
		}
	}

	return false, nil
}

// redraw erases the line and draws the prompt and buffer again.
func (s *session) redraw() error {
	var sb strings.Builder
	sb.WriteString("\r")
	sb.WriteString(ansi.EraseEntireLine)
	sb.WriteString(tui.Render(s.prompt))
	sb.WriteString(s.buf.String())
	sb.WriteString(ansi.CursorHorizontalAbsolute(s.column() + 1))
	return s.term.Write(sb.String())
}

// moveCursor places the terminal cursor at the buffer cursor.
func (s *session) moveCursor() error {
	return s.term.Write(ansi.CursorHorizontalAbsolute(s.column() + 1))
}

// column is the zero-based screen column of the buffer cursor.
func (s *session) column() int {
	return tui.DisplayWidth(s.prompt) + ansi.StringWidth(s.buf.BeforeCursor())
}

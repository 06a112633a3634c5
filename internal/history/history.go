// Package history provides the persistent, size-bounded command history
// used by the interactive shell.
package history

import "strings"

// DefaultMaxSize is the number of entries kept when no size is configured.
const DefaultMaxSize = 1000

// Store is an ordered log of submitted commands, oldest first.
//
// The browse cursor ranges over [0, Len()]; Len() is the live position,
// meaning the user is editing a fresh line rather than viewing an entry.
// Every mutation is written through to the backing file. Write failures are
// kept in Err and never surface to callers.
type Store struct {
	path    string
	maxSize int

	// entries holds the commands, oldest first
	entries []string

	// cursor is the current browse position (len(entries) = live)
	cursor int

	// err is the last persistence error, nil after a successful write
	err error
}

// New creates a Store backed by the file at path and loads its contents.
// A missing or unreadable file yields an empty store. A non-positive
// maxSize falls back to DefaultMaxSize. An empty path keeps the history in
// memory only.
func New(path string, maxSize int) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	s := &Store{
		path:    path,
		maxSize: maxSize,
	}

	if path != "" {
		entries, err := Load(path, maxSize)
		if err != nil {
			s.err = err
			entries = nil
		}
		s.entries = entries
	}
	s.cursor = len(s.entries)

	return s
}

// Add records a command. Blank commands and commands equal to the most
// recent entry are ignored. The oldest entry is evicted once the store is
// over capacity, and the browse cursor returns to the live position.
func (s *Store) Add(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}

	// Skip consecutive duplicates only
	if n := len(s.entries); n > 0 && s.entries[n-1] == command {
		return
	}

	s.entries = append(s.entries, command)
	if over := len(s.entries) - s.maxSize; over > 0 {
		s.entries = append(s.entries[:0:0], s.entries[over:]...)
	}

	s.cursor = len(s.entries)
	s.persist()
}

// Previous moves the cursor toward older entries and returns the entry at
// the new position. At the oldest entry it keeps returning that entry.
// Returns an empty string when the history is empty.
func (s *Store) Previous() string {
	if len(s.entries) == 0 {
		return ""
	}

	if s.cursor > 0 {
		s.cursor--
	}

	return s.entries[s.cursor]
}

// Next moves the cursor toward newer entries. Moving past the newest entry
// returns to the live position and yields an empty string.
func (s *Store) Next() string {
	if len(s.entries) == 0 {
		return ""
	}

	if s.cursor < len(s.entries)-1 {
		s.cursor++
		return s.entries[s.cursor]
	}

	s.cursor = len(s.entries)
	return ""
}

// ResetCursor returns the browse cursor to the live position.
func (s *Store) ResetCursor() {
	s.cursor = len(s.entries)
}

// Clear removes every entry and persists the empty history.
func (s *Store) Clear() {
	s.entries = nil
	s.cursor = 0
	s.persist()
}

// Entries returns a copy of the stored commands, oldest first.
func (s *Store) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Cursor returns the current browse position.
func (s *Store) Cursor() int {
	return s.cursor
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Err returns the most recent load or save error, if any.
func (s *Store) Err() error {
	return s.err
}

func (s *Store) persist() {
	if s.path == "" {
		return
	}
	s.err = Save(s.path, s.entries)
}

package lineedit

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vstratful/rshell/internal/history"
)

// fakeTerminal replays scripted key events and records everything written.
type fakeTerminal struct {
	events   []Event
	writes   []string
	raw      int
	restored int
	rawErr   error
}

func (f *fakeTerminal) ReadKey() (Event, error) {
	if len(f.events) == 0 {
		return Event{}, io.EOF
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func (f *fakeTerminal) Write(s string) error {
	f.writes = append(f.writes, s)
	return nil
}

func (f *fakeTerminal) MakeRaw() (func() error, error) {
	if f.rawErr != nil {
		return nil, f.rawErr
	}
	f.raw++
	return func() error {
		f.restored++
		return nil
	}, nil
}

func (f *fakeTerminal) last() string {
	if len(f.writes) == 0 {
		return ""
	}
	return f.writes[len(f.writes)-1]
}

// recordingHistory counts calls to Add.
type recordingHistory struct {
	*history.Store
	added []string
}

func (r *recordingHistory) Add(command string) {
	r.added = append(r.added, command)
	r.Store.Add(command)
}

func typed(s string) []Event {
	var events []Event
	for _, r := range s {
		events = append(events, RuneEvent(r))
	}
	return events
}

func keys(groups ...[]Event) []Event {
	var out []Event
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func special(ks ...Key) []Event {
	var out []Event
	for _, k := range ks {
		out = append(out, SpecialEvent(k))
	}
	return out
}

func storeWith(entries ...string) *history.Store {
	s := history.New("", 0)
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

func TestReadLine_EditingScenario(t *testing.T) {
	term := &fakeTerminal{events: keys(
		typed("abc"),
		special(KeyBackspace, KeyLeft),
		typed("X"),
		special(KeyDelete),
	)}
	h := storeWith()

	_, err := New(term).ReadLine("> ", h)
	require.ErrorIs(t, err, io.EOF)

	// After Delete the line is "aX" with the cursor after X: column 2+2
	last := term.last()
	assert.Contains(t, last, ansi.EraseEntireLine)
	assert.Contains(t, last, "aX")
	assert.True(t, strings.HasSuffix(last, ansi.CursorHorizontalAbsolute(5)), "last write %q", last)
}

func TestReadLine_Submit(t *testing.T) {
	term := &fakeTerminal{events: keys(
		typed("abc"),
		special(KeyBackspace, KeyLeft),
		typed("X"),
		special(KeyDelete, KeyEnter),
	)}
	h := &recordingHistory{Store: storeWith()}

	line, err := New(term).ReadLine("> ", h)
	require.NoError(t, err)

	assert.Equal(t, "aX", line)
	assert.Equal(t, []string{"aX"}, h.added)
	assert.Equal(t, "\r\n", term.last())
	assert.Equal(t, 1, term.raw)
	assert.Equal(t, 1, term.restored)
}

func TestReadLine_BlankLineNotRecorded(t *testing.T) {
	term := &fakeTerminal{events: keys(typed("   "), special(KeyEnter))}
	h := &recordingHistory{Store: storeWith()}

	line, err := New(term).ReadLine("> ", h)
	require.NoError(t, err)

	assert.Equal(t, "   ", line)
	assert.Empty(t, h.added)
}

func TestReadLine_Interrupt(t *testing.T) {
	term := &fakeTerminal{events: keys(typed("rm -rf"), []Event{CtrlEvent('c')})}
	h := &recordingHistory{Store: storeWith("ls")}

	line, err := New(term).ReadLine("> ", h)
	require.NoError(t, err)

	assert.Equal(t, "", line)
	assert.Empty(t, h.added)
	assert.Equal(t, []string{"ls"}, h.Entries())
	assert.Equal(t, 1, term.restored)
}

func TestReadLine_HistoryNavigation(t *testing.T) {
	term := &fakeTerminal{events: keys(
		special(KeyUp, KeyUp, KeyUp, KeyUp, KeyDown),
		special(KeyEnter),
	)}
	h := storeWith("ls", "echo hi", "ls -l")

	line, err := New(term).ReadLine("> ", h)
	require.NoError(t, err)

	assert.Equal(t, "echo hi", line)
	assert.Equal(t, []string{"ls", "echo hi", "ls -l", "echo hi"}, h.Entries())
}

func TestReadLine_DownPastNewestClearsLine(t *testing.T) {
	term := &fakeTerminal{events: keys(
		typed("draft"),
		special(KeyUp, KeyDown, KeyEnter),
	)}
	h := &recordingHistory{Store: storeWith("ls")}

	line, err := New(term).ReadLine("> ", h)
	require.NoError(t, err)

	assert.Equal(t, "", line)
	assert.Empty(t, h.added)
}

func TestReadLine_HistoryRecallPlacesCursorAtEnd(t *testing.T) {
	term := &fakeTerminal{events: keys(special(KeyUp), typed("!"), special(KeyEnter))}
	h := storeWith("ls -l")

	line, err := New(term).ReadLine("> ", h)
	require.NoError(t, err)
	assert.Equal(t, "ls -l!", line)
}

func TestReadLine_ResetsHistoryCursor(t *testing.T) {
	h := storeWith("first", "second")
	h.Previous()
	h.Previous()

	term := &fakeTerminal{events: keys(special(KeyUp, KeyEnter))}
	line, err := New(term).ReadLine("> ", h)
	require.NoError(t, err)

	assert.Equal(t, "second", line)
}

func TestReadLine_CursorMovesOnlyReposition(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyLeft, ansi.CursorHorizontalAbsolute(2 + 3 + 1)},
		{KeyHome, ansi.CursorHorizontalAbsolute(2 + 0 + 1)},
		{KeyRight, ansi.CursorHorizontalAbsolute(2 + 1 + 1)},
		{KeyEnd, ansi.CursorHorizontalAbsolute(2 + 4 + 1)},
		{KeyRight, ansi.CursorHorizontalAbsolute(2 + 4 + 1)},
	}

	term := &fakeTerminal{events: typed("abcd")}
	for _, tt := range tests {
		term.events = append(term.events, SpecialEvent(tt.key))
	}

	_, err := New(term).ReadLine("> ", storeWith())
	require.ErrorIs(t, err, io.EOF)

	moves := term.writes[len(term.writes)-len(tests):]
	for i, tt := range tests {
		assert.Equal(t, tt.want, moves[i], "move %d (%s)", i, tt.key)
	}
}

func TestReadLine_MarkupPromptWidth(t *testing.T) {
	prompt := "[bold green]rShell>[/] [dim]src[/]> "
	term := &fakeTerminal{events: typed("ab")}

	_, err := New(term).ReadLine(prompt, storeWith())
	require.ErrorIs(t, err, io.EOF)

	// "rShell> src> " is 13 columns, plus two typed characters
	assert.True(t, strings.HasSuffix(term.last(), ansi.CursorHorizontalAbsolute(13+2+1)), "last write %q", term.last())
	assert.NotContains(t, term.last(), "[bold")
}

func TestReadLine_IgnoresControlKeys(t *testing.T) {
	term := &fakeTerminal{events: []Event{
		SpecialEvent(KeyTab),
		SpecialEvent(KeyEscape),
		SpecialEvent(KeyNone),
		CtrlEvent('a'),
		{Key: KeyRune, Rune: 'x', Modifiers: ModAlt},
		SpecialEvent(KeyBackspace),
		SpecialEvent(KeyDelete),
	}}

	_, err := New(term).ReadLine("> ", storeWith())
	require.ErrorIs(t, err, io.EOF)

	// Only the initial prompt was drawn
	assert.Len(t, term.writes, 1)
}

func TestReadLine_RawModeFailure(t *testing.T) {
	term := &fakeTerminal{rawErr: ErrNotTerminal}

	_, err := New(term).ReadLine("> ", storeWith())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotTerminal))
	assert.Empty(t, term.writes)
}

func TestReadLine_EmptyHistoryUpDown(t *testing.T) {
	term := &fakeTerminal{events: keys(special(KeyUp, KeyDown), typed("x"), special(KeyEnter))}

	line, err := New(term).ReadLine("> ", storeWith())
	require.NoError(t, err)
	assert.Equal(t, "x", line)
}

package lineedit

import (
	"bufio"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/parser"
)

// EscapeTimeout is how long the decoder waits after ESC for the rest of an
// escape sequence before reporting a lone Escape key.
const EscapeTimeout = 50 * time.Millisecond

// maxSequenceLen bounds the bytes consumed by one control sequence.
const maxSequenceLen = 32

// csiKeys maps the final byte of CSI and SS3 sequences to keys.
var csiKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeKeys maps the first parameter of "CSI n ~" sequences to keys.
var tildeKeys = map[int]Key{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	7: KeyHome,
	8: KeyEnd,
}

// waiter is implemented by inputs that can wait a bounded time for more
// bytes. It reports whether input became available within d.
type waiter interface {
	Wait(d time.Duration) bool
}

// Decoder turns the raw byte stream of a terminal into key events.
type Decoder struct {
	r      *bufio.Reader
	wait   func(time.Duration) bool
	parser *ansi.Parser

	// set by the parser's CSI handler
	csi    Event
	csiSet bool
}

// NewDecoder creates a Decoder reading from in. If in can wait for input
// with a timeout, a lone ESC is told apart from the start of a sequence
// that arrives in pieces. Otherwise the decoder blocks for the next byte.
func NewDecoder(in io.Reader) *Decoder {
	d := &Decoder{
		r:      bufio.NewReader(in),
		parser: ansi.NewParser(),
	}
	if w, ok := in.(waiter); ok {
		d.wait = w.Wait
	}
	d.parser.SetHandler(ansi.Handler{
		HandleCsi: func(cmd ansi.Cmd, params ansi.Params) {
			d.csi = csiEvent(cmd, params)
			d.csiSet = true
		},
	})
	return d
}

// ReadEvent decodes one key press. Sequences it does not understand decode
// to a KeyNone event.
func (d *Decoder) ReadEvent() (Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return Event{}, err
	}

	switch {
	case b == 0x1b:
		return d.readEscape()
	case b == '\r':
		// Pasted CRLF is one Enter
		if d.r.Buffered() > 0 {
			if next, err := d.r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = d.r.Discard(1)
			}
		}
		return SpecialEvent(KeyEnter), nil
	case b == '\n':
		return SpecialEvent(KeyEnter), nil
	case b == 0x7f || b == 0x08:
		return SpecialEvent(KeyBackspace), nil
	case b == '\t':
		return SpecialEvent(KeyTab), nil
	case b == 0x00:
		return Event{Key: KeyRune, Rune: ' ', Modifiers: ModCtrl}, nil
	case b >= 0x01 && b <= 0x1a:
		return CtrlEvent(rune('a' + b - 1)), nil
	case b < 0x20:
		return Event{}, nil
	}

	if err := d.r.UnreadByte(); err != nil {
		return Event{}, err
	}
	ch, _, err := d.r.ReadRune()
	if err != nil {
		return Event{}, err
	}
	return RuneEvent(ch), nil
}

// readEscape decodes the bytes following ESC.
func (d *Decoder) readEscape() (Event, error) {
	if d.r.Buffered() == 0 && d.wait != nil && !d.wait(EscapeTimeout) {
		return SpecialEvent(KeyEscape), nil
	}

	b, err := d.r.ReadByte()
	if errors.Is(err, io.EOF) {
		return SpecialEvent(KeyEscape), nil
	}
	if err != nil {
		return Event{}, err
	}

	switch b {
	case '[':
		return d.readCSI()
	case 'O':
		// SS3: a single final byte
		final, err := d.r.ReadByte()
		if err != nil {
			return Event{}, err
		}
		return SpecialEvent(csiKeys[final]), nil
	case 0x1b:
		return SpecialEvent(KeyEscape), nil
	}

	if err := d.r.UnreadByte(); err != nil {
		return Event{}, err
	}
	ev, err := d.ReadEvent()
	if err != nil {
		return Event{}, err
	}
	ev.Modifiers |= ModAlt
	return ev, nil
}

// readCSI feeds a control sequence after "ESC [" through the ANSI parser
// until it dispatches or gives up on the sequence.
func (d *Decoder) readCSI() (Event, error) {
	d.parser.Reset()
	d.csiSet = false
	d.parser.Advance(0x1b)
	d.parser.Advance('[')

	for i := 0; i < maxSequenceLen; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return Event{}, err
		}
		d.parser.Advance(b)
		if d.parser.State() == parser.GroundState {
			if d.csiSet {
				return d.csi, nil
			}
			return Event{}, nil
		}
	}
	d.parser.Reset()
	return Event{}, nil
}

func csiEvent(cmd ansi.Cmd, params ansi.Params) Event {
	if cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return Event{}
	}

	var ev Event
	if final := cmd.Final(); final == '~' {
		n, _, ok := params.Param(0, 0)
		if !ok {
			return Event{}
		}
		ev.Key = tildeKeys[n]
	} else {
		ev.Key = csiKeys[final]
	}

	if mod, _, ok := params.Param(1, 1); ok {
		ev.Modifiers = xtermModifiers(mod)
	}
	return ev
}

// xtermModifiers decodes the xterm modifier parameter (1 + bit set).
func xtermModifiers(n int) Modifier {
	if n < 1 {
		return ModNone
	}
	bits := n - 1

	var mods Modifier
	if bits&1 != 0 {
		mods |= ModShift
	}
	if bits&2 != 0 {
		mods |= ModAlt
	}
	if bits&4 != 0 {
		mods |= ModCtrl
	}
	return mods
}

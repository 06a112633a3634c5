package lineedit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when raw mode is requested on a stream that
// is not attached to a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// TTY is a Terminal backed by a real terminal device.
type TTY struct {
	in      *os.File
	out     io.Writer
	decoder *Decoder
}

// NewTTY creates a TTY reading keys from in and drawing on out.
func NewTTY(in *os.File, out io.Writer) *TTY {
	return &TTY{
		in:      in,
		out:     out,
		decoder: NewDecoder(&ttyInput{f: in}),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// MakeRaw puts the input terminal into raw mode.
func (t *TTY) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	return func() error {
		return term.Restore(fd, state)
	}, nil
}

// ReadKey reads the next key press.
func (t *TTY) ReadKey() (Event, error) {
	return t.decoder.ReadEvent()
}

// Write sends s to the output.
func (t *TTY) Write(s string) error {
	if _, err := io.WriteString(t.out, s); err != nil {
		return fmt.Errorf("failed to write to terminal: %w", err)
	}
	return nil
}

// Width returns the terminal width in columns, or 0 if unknown.
func (t *TTY) Width() int {
	f, ok := t.out.(*os.File)
	if !ok {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// ttyInput reads from the terminal and can wait a bounded time for input.
type ttyInput struct {
	f       *os.File
	pending []byte
}

func (in *ttyInput) Read(p []byte) (int, error) {
	if len(in.pending) > 0 {
		n := copy(p, in.pending)
		in.pending = in.pending[n:]
		return n, nil
	}
	return in.f.Read(p)
}

// Wait blocks until input is available or d elapses. Bytes read while
// waiting are returned by the next Read.
func (in *ttyInput) Wait(d time.Duration) bool {
	if len(in.pending) > 0 {
		return true
	}

	cr, err := cancelreader.NewReader(in.f)
	if err != nil {
		// No cancellable read on this platform: block for the next byte
		return true
	}
	defer cr.Close()

	timer := time.AfterFunc(d, func() { cr.Cancel() })
	defer timer.Stop()

	buf := make([]byte, 64)
	n, err := cr.Read(buf)
	in.pending = append(in.pending, buf[:n]...)
	if n > 0 {
		return true
	}
	// Timed out, or a read error the next Read will report
	return err != nil && !errors.Is(err, cancelreader.ErrCanceled)
}

package lineedit

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/vstratful/rshell/internal/tui"
)

// LineReader reads whole lines from a non-interactive stream, such as a
// pipe. It shows the prompt and records history like Editor but offers no
// editing.
type LineReader struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLineReader creates a LineReader reading from in and echoing prompts
// to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine shows prompt and returns the next line without its terminator.
// It returns io.EOF once the input is exhausted.
func (l *LineReader) ReadLine(prompt string, h History) (string, error) {
	h.ResetCursor()

	if _, err := io.WriteString(l.out, tui.Render(prompt)); err != nil {
		return "", err
	}

	line, err := l.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) != "" {
		h.Add(line)
	}
	return line, nil
}

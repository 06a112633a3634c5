package lineedit

// Buffer is the text being edited and the insertion point within it.
// All cursor movement is clamped to [0, Len()].
type Buffer struct {
	text []rune
	pos  int
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.text)
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Pos returns the cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// BeforeCursor returns the text left of the cursor.
func (b *Buffer) BeforeCursor() string {
	return string(b.text[:b.pos])
}

// Set replaces the contents and moves the cursor to the end.
func (b *Buffer) Set(s string) {
	b.text = []rune(s)
	b.pos = len(b.text)
}

// Insert adds r at the cursor and advances the cursor.
func (b *Buffer) Insert(r rune) {
	b.text = append(b.text, 0)
	copy(b.text[b.pos+1:], b.text[b.pos:])
	b.text[b.pos] = r
	b.pos++
}

// Backspace removes the character before the cursor. Reports whether the
// buffer changed.
func (b *Buffer) Backspace() bool {
	if b.pos == 0 {
		return false
	}
	b.text = append(b.text[:b.pos-1], b.text[b.pos:]...)
	b.pos--
	return true
}

// Delete removes the character under the cursor. Reports whether the
// buffer changed.
func (b *Buffer) Delete() bool {
	if b.pos >= len(b.text) {
		return false
	}
	b.text = append(b.text[:b.pos], b.text[b.pos+1:]...)
	return true
}

// Left moves the cursor one character left.
func (b *Buffer) Left() {
	b.pos = max(b.pos-1, 0)
}

// Right moves the cursor one character right.
func (b *Buffer) Right() {
	b.pos = min(b.pos+1, len(b.text))
}

// Home moves the cursor to the start of the line.
func (b *Buffer) Home() {
	b.pos = 0
}

// End moves the cursor to the end of the line.
func (b *Buffer) End() {
	b.pos = len(b.text)
}

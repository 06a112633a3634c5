package lineedit

import "unicode"

// Key identifies a key press. Character keys use KeyRune with the
// character in Event.Rune.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyTab
	KeyEscape
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyTab:
		return "tab"
	case KeyEscape:
		return "escape"
	default:
		return "none"
	}
}

// Modifier is a bit set of modifier keys held during a key press.
type Modifier uint8

// ModNone means no modifier was held.
const ModNone Modifier = 0

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether all modifiers in m are set.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// Event is a single key press: a key code, modifier flags and, for
// character keys, the character.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// RuneEvent returns an event for a character key.
func RuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// CtrlEvent returns an event for Ctrl plus a letter, e.g. CtrlEvent('c').
func CtrlEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// SpecialEvent returns an event for a non-character key.
func SpecialEvent(k Key) Event {
	return Event{Key: k}
}

// IsInterrupt reports whether the event is Ctrl+C.
func (e Event) IsInterrupt() bool {
	return e.Key == KeyRune && e.Modifiers.Has(ModCtrl) && unicode.ToLower(e.Rune) == 'c'
}

// IsPrintable reports whether the event inserts a visible character.
func (e Event) IsPrintable() bool {
	if e.Key != KeyRune || e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) {
		return false
	}
	return !unicode.IsControl(e.Rune) && unicode.IsPrint(e.Rune)
}

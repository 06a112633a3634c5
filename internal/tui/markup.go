package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Markup strings use bracket tags to style text, for example
// "[bold green]rShell>[/] [dim]home[/]> ". Tags nest, "[/]" closes the
// innermost open tag, and "[[" / "]]" produce literal brackets.

// namedColors maps markup colour names to ANSI colour numbers.
var namedColors = map[string]string{
	"black":   "0",
	"maroon":  "1",
	"red":     "9",
	"green":   "2",
	"lime":    "10",
	"olive":   "3",
	"yellow":  "11",
	"navy":    "4",
	"blue":    "12",
	"purple":  "5",
	"magenta": "13",
	"fuchsia": "13",
	"teal":    "6",
	"cyan":    "14",
	"aqua":    "14",
	"silver":  "7",
	"grey":    "8",
	"gray":    "8",
	"white":   "15",
}

// segment is a run of plain text rendered with a single style.
type segment struct {
	text   string
	style  lipgloss.Style
	styled bool
}

// Render converts markup into terminal output.
func Render(markup string) string {
	var sb strings.Builder
	for _, seg := range parseMarkup(markup) {
		if seg.styled {
			sb.WriteString(seg.style.Render(seg.text))
		} else {
			sb.WriteString(seg.text)
		}
	}
	return sb.String()
}

// Strip removes markup tags and resolves escaped brackets.
func Strip(markup string) string {
	var sb strings.Builder
	for _, seg := range parseMarkup(markup) {
		sb.WriteString(seg.text)
	}
	return sb.String()
}

// Escape doubles square brackets so text is shown literally when embedded
// in markup.
func Escape(text string) string {
	text = strings.ReplaceAll(text, "[", "[[")
	return strings.ReplaceAll(text, "]", "]]")
}

// DisplayWidth returns the number of terminal columns s occupies once ANSI
// escape sequences and markup tags are removed.
func DisplayWidth(s string) int {
	return ansi.StringWidth(Strip(ansi.Strip(s)))
}

// parseMarkup splits markup into styled text segments. Adjacent text with
// the same open tags is merged into one segment.
func parseMarkup(markup string) []segment {
	type frame struct {
		style  lipgloss.Style
		styled bool
	}

	var (
		segs  []segment
		stack []frame
		text  strings.Builder
	)

	current := func() frame {
		if len(stack) == 0 {
			return frame{style: lipgloss.NewStyle()}
		}
		return stack[len(stack)-1]
	}

	flush := func() {
		if text.Len() == 0 {
			return
		}
		f := current()
		segs = append(segs, segment{text: text.String(), style: f.style, styled: f.styled})
		text.Reset()
	}

	for i := 0; i < len(markup); i++ {
		c := markup[i]

		switch c {
		case '[':
			if i+1 < len(markup) && markup[i+1] == '[' {
				text.WriteByte('[')
				i++
				continue
			}

			end := strings.IndexByte(markup[i+1:], ']')
			if end < 0 {
				text.WriteString(markup[i:])
				i = len(markup)
				continue
			}

			tag := strings.TrimSpace(markup[i+1 : i+1+end])
			i += end + 1

			flush()
			if tag == "/" {
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				continue
			}

			style, styled := parseStyle(tag)
			parent := current()
			stack = append(stack, frame{
				style:  style.Inherit(parent.style),
				styled: styled || parent.styled,
			})

		case ']':
			if i+1 < len(markup) && markup[i+1] == ']' {
				i++
			}
			text.WriteByte(']')

		default:
			text.WriteByte(c)
		}
	}
	flush()

	return segs
}

// parseStyle interprets the words of a tag such as "bold green on black".
// Unknown words are ignored. The boolean reports whether any word applied.
func parseStyle(tag string) (lipgloss.Style, bool) {
	style := lipgloss.NewStyle()
	styled := false

	words := strings.Fields(strings.ToLower(tag))
	for i := 0; i < len(words); i++ {
		word := words[i]

		switch word {
		case "bold":
			style = style.Bold(true)
		case "dim":
			style = style.Faint(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "strikethrough":
			style = style.Strikethrough(true)
		case "blink", "slowblink", "rapidblink":
			style = style.Blink(true)
		case "invert", "reverse":
			style = style.Reverse(true)
		case "on":
			if i+1 < len(words) {
				if color, ok := parseColor(words[i+1]); ok {
					style = style.Background(color)
					styled = true
				}
				i++
			}
			continue
		default:
			color, ok := parseColor(word)
			if !ok {
				continue
			}
			style = style.Foreground(color)
		}
		styled = true
	}

	return style, styled
}

// parseColor accepts colour names, #rrggbb hex values and ANSI numbers.
func parseColor(word string) (lipgloss.Color, bool) {
	if n, ok := namedColors[word]; ok {
		return lipgloss.Color(n), true
	}
	if strings.HasPrefix(word, "#") && (len(word) == 4 || len(word) == 7) {
		return lipgloss.Color(word), true
	}
	if n, err := strconv.Atoi(word); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(word), true
	}
	return "", false
}

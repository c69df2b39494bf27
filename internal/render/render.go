// Package render turns raw pane captures into something readable.
//
// Captures taken with escape passthrough carry SGR color/attribute
// sequences. This package parses the SGR subset terminals actually emit,
// re-renders it through lipgloss for display, strips it for plain output,
// and can mark the cursor position reported by the multiplexer.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CursorMarker is inserted at the cursor cell by InsertCursorMarker.
const CursorMarker = "█"

// Style is the visual state accumulated from SGR parameters.
type Style struct {
	FG        string // ANSI color number or 256-color index, "" for default
	BG        string
	Bold      bool
	Faint     bool
	Italic    bool
	Underline bool
	Reverse   bool
}

// Span is a run of text with a single style.
type Span struct {
	Text  string
	Style Style
}

// Line is one pane row as styled spans.
type Line []Span

// Parse splits ANSI-carrying content into styled lines. Escape sequences
// other than SGR are dropped; the style is carried across line breaks the
// way a terminal would.
func Parse(content string) []Line {
	var (
		lines   []Line
		current Line
		text    strings.Builder
		style   Style
	)

	flush := func() {
		if text.Len() > 0 {
			current = append(current, Span{Text: text.String(), Style: style})
			text.Reset()
		}
	}

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\n':
			flush()
			lines = append(lines, current)
			current = nil
		case c == 0x1b:
			flush()
			seq, params, ok := readCSI(content[i:])
			if ok {
				if strings.HasSuffix(seq, "m") {
					style = applySGR(style, params)
				}
				i += len(seq) - 1
			}
			// A bare ESC not opening a CSI sequence is dropped.
		default:
			text.WriteByte(c)
		}
	}
	flush()
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// readCSI consumes an ESC [ sequence from the front of s, returning the
// full sequence, its parameter section, and whether one was present.
func readCSI(s string) (seq string, params string, ok bool) {
	if len(s) < 2 || s[1] != '[' {
		return "", "", false
	}
	for i := 2; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == ';' || c == ':' || c == '?' {
			continue
		}
		return s[:i+1], s[2:i], true
	}
	return "", "", false
}

// applySGR folds one SGR parameter list into the current style.
func applySGR(style Style, params string) Style {
	if params == "" {
		return Style{}
	}
	fields := strings.Split(params, ";")
	for i := 0; i < len(fields); i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			continue
		}
		switch {
		case n == 0:
			style = Style{}
		case n == 1:
			style.Bold = true
		case n == 2:
			style.Faint = true
		case n == 3:
			style.Italic = true
		case n == 4:
			style.Underline = true
		case n == 7:
			style.Reverse = true
		case n == 22:
			style.Bold, style.Faint = false, false
		case n == 23:
			style.Italic = false
		case n == 24:
			style.Underline = false
		case n == 27:
			style.Reverse = false
		case n >= 30 && n <= 37:
			style.FG = strconv.Itoa(n - 30)
		case n == 38:
			if c, skip := extendedColor(fields[i+1:]); skip > 0 {
				style.FG = c
				i += skip
			}
		case n == 39:
			style.FG = ""
		case n >= 40 && n <= 47:
			style.BG = strconv.Itoa(n - 40)
		case n == 48:
			if c, skip := extendedColor(fields[i+1:]); skip > 0 {
				style.BG = c
				i += skip
			}
		case n == 49:
			style.BG = ""
		case n >= 90 && n <= 97:
			style.FG = strconv.Itoa(n - 90 + 8)
		case n >= 100 && n <= 107:
			style.BG = strconv.Itoa(n - 100 + 8)
		}
	}
	return style
}

// extendedColor handles the 38;5;n / 48;5;n 256-color form. Truecolor
// (2;r;g;b) is folded to a hex color. Returns the color and how many
// fields were consumed.
func extendedColor(rest []string) (string, int) {
	if len(rest) >= 2 && rest[0] == "5" {
		return rest[1], 2
	}
	if len(rest) >= 4 && rest[0] == "2" {
		r, _ := strconv.Atoi(rest[1])
		g, _ := strconv.Atoi(rest[2])
		b, _ := strconv.Atoi(rest[3])
		return "#" + hex2(r) + hex2(g) + hex2(b), 4
	}
	return "", 0
}

func hex2(n int) string {
	const digits = "0123456789abcdef"
	n &= 0xff
	return string([]byte{digits[n>>4], digits[n&0xf]})
}

// Render re-renders parsed lines through lipgloss.
func Render(lines []Line) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, span := range line {
			b.WriteString(lipglossStyle(span.Style).Render(span.Text))
		}
	}
	return b.String()
}

func lipglossStyle(s Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.FG != "" {
		st = st.Foreground(lipgloss.Color(s.FG))
	}
	if s.BG != "" {
		st = st.Background(lipgloss.Color(s.BG))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Faint {
		st = st.Faint(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}

// Strip removes all escape sequences, returning plain text.
func Strip(content string) string {
	var b strings.Builder
	for _, line := range Parse(content) {
		for _, span := range line {
			b.WriteString(span.Text)
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// InsertCursorMarker overlays the cursor cell at 0-based x,y with the
// marker. Out-of-range positions return the content unchanged; the
// multiplexer is the authority on where the cursor is.
func InsertCursorMarker(content string, x, y int) string {
	lines := strings.Split(content, "\n")
	if y < 0 || y >= len(lines) {
		return content
	}
	runes := []rune(lines[y])
	switch {
	case x < 0:
		return content
	case x >= len(runes):
		lines[y] = string(runes) + strings.Repeat(" ", x-len(runes)) + CursorMarker
	default:
		lines[y] = string(runes[:x]) + CursorMarker + string(runes[x+1:])
	}
	return strings.Join(lines, "\n")
}

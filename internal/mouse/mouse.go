// Package mouse encodes SGR mouse-protocol events for the hex channel.
//
// The wire form is ESC [ < code ; x ; y M for press and scroll, with a
// lowercase trailing m for release — the terminator's case is the only
// thing distinguishing the two. code is the button (or scroll base) plus
// the sum of the active modifier bits. Coordinates are 1-based and pane
// relative; they are passed through unvalidated because the receiving
// terminal clips out-of-range values itself.
package mouse

import (
	"fmt"

	"github.com/timvw/pane-pilot/internal/model"
	"github.com/timvw/pane-pilot/internal/rawseq"
)

// ScrollDirection selects the wheel event base code.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
)

// Press encodes a button press at x,y.
func Press(x, y int, button model.MouseButton, mods []model.MouseModifier) string {
	return encode(code(button, mods), x, y, 'M')
}

// Release encodes a button release at x,y.
func Release(x, y int, button model.MouseButton, mods []model.MouseModifier) string {
	return encode(code(button, mods), x, y, 'm')
}

// Scroll encodes one wheel notch at x,y. Scroll events are press-only;
// terminals do not expect a matching release.
func Scroll(x, y int, dir ScrollDirection, mods []model.MouseModifier) string {
	base := model.ScrollUpBase
	if dir == ScrollDown {
		base = model.ScrollDownBase
	}
	return encode(code(base, mods), x, y, 'M')
}

// Move encodes a drag-motion event at x,y using the protocol's reserved
// motion button code.
func Move(x, y int) string {
	return encode(int(model.ButtonMove), x, y, 'M')
}

func code(button model.MouseButton, mods []model.MouseModifier) int {
	c := int(button)
	for _, m := range mods {
		c += int(m)
	}
	return c
}

func encode(code, x, y int, terminator byte) string {
	seq := fmt.Sprintf("\x1b[<%d;%d;%d%c", code, x, y, terminator)
	return rawseq.HexString([]byte(seq))
}

// Package keys resolves key specs into the form a pane can receive.
//
// A key spec is a bare key name optionally preceded by chained modifier
// prefixes: "C-c", "M-Enter", "C-M-S-a", "Super-t". Ctrl/Alt/Shift
// combinations stay on the plain-text channel using tmux's own C-/M-/S-
// prefix syntax. Super and Hyper have no tmux text form, so any spec
// carrying them is encoded for the hex channel using the kitty keyboard
// protocol instead.
package keys

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/timvw/pane-pilot/internal/rawseq"
)

// Kitty keyboard protocol modifier bits. The wire field is the sum plus
// one: an unmodified key encodes its modifier field as 1, not 0.
const (
	ModShift = 1
	ModAlt   = 2
	ModCtrl  = 4
	ModSuper = 8
	ModHyper = 16
)

// Kitty event codes.
const (
	eventPress   = 1
	eventRelease = 3
)

// prefix is one recognized modifier token. Prefixes with an empty text
// form (Super, Hyper) cannot ride the plain channel and force hex mode.
type prefix struct {
	token string
	text  string
	bits  int
}

// prefixes is checked in order on every fold step, so chained prefixes
// may appear in any order in the spec.
var prefixes = []prefix{
	{token: "C-", text: "C-", bits: ModCtrl},
	{token: "M-", text: "M-", bits: ModAlt},
	{token: "S-", text: "S-", bits: ModShift},
	{token: "Super-", bits: ModSuper},
	{token: "Hyper-", bits: ModHyper},
}

// canonicalNames maps human-friendly key names to tmux's canonical key
// names. Unmapped names pass through unchanged.
var canonicalNames = map[string]string{
	"Enter":     "Enter",
	"Escape":    "Escape",
	"Esc":       "Escape",
	"Tab":       "Tab",
	"Space":     "Space",
	"Backspace": "BSpace",
	"BSpace":    "BSpace",
	"BS":        "BSpace",
	"Delete":    "DC",
	"Del":       "DC",
	"Insert":    "IC",
	"Ins":       "IC",
	"Home":      "Home",
	"End":       "End",
	"PageUp":    "PageUp",
	"PgUp":      "PageUp",
	"PageDown":  "PageDown",
	"PgDn":      "PageDown",
	"Up":        "Up",
	"Down":      "Down",
	"Left":      "Left",
	"Right":     "Right",

	// Standalone modifier keys, for explicit press/release events.
	"Control": "Control",
	"Shift":   "Shift",
	"Alt":     "Alt",
	"Meta":    "Meta",
	"Super":   "Super",
	"Hyper":   "Hyper",
}

// controlCodepoints gives the kitty codepoint for named control keys.
// Anything absent falls back to its first character's codepoint.
var controlCodepoints = map[string]int{
	"Enter":  13,
	"Escape": 27,
	"Tab":    9,
	"Space":  32,
	"BSpace": 127,
}

func init() {
	for _, c := range []string{"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12"} {
		canonicalNames[c] = c
	}
	for alias, canon := range canonicalNames {
		if canon == "" {
			panic(fmt.Sprintf("keys: alias %q maps to empty canonical name", alias))
		}
	}
}

// Aliases returns a copy of the recognized key name aliases and their
// canonical forms, for help output.
func Aliases() map[string]string {
	out := make(map[string]string, len(canonicalNames))
	for alias, canon := range canonicalNames {
		out[alias] = canon
	}
	return out
}

// Resolved is a key spec translated for delivery. Exactly one field is
// set: Plain for the plain-text channel, Hex for the hex channel.
type Resolved struct {
	Plain string
	Hex   string
}

// IsHex reports whether the key must go over the hex channel.
func (r Resolved) IsHex() bool {
	return r.Hex != ""
}

// splitSpec strips chained modifier prefixes left to right, accumulating
// the modifier bitmask and the plain-channel text prefix, and returns the
// canonical bare key name. A pure fold: each step consumes at most one
// recognized prefix and leaves a non-empty remainder.
func splitSpec(spec string) (name, textPrefix string, bits int, needHex bool) {
	rest := spec
	for {
		matched := false
		for _, p := range prefixes {
			if strings.HasPrefix(rest, p.token) && len(rest) > len(p.token) {
				rest = rest[len(p.token):]
				bits |= p.bits
				textPrefix += p.text
				if p.text == "" {
					needHex = true
				}
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	if canon, ok := canonicalNames[rest]; ok {
		rest = canon
	}
	return rest, textPrefix, bits, needHex
}

// Resolve translates a key spec. Ctrl/Alt/Shift prefixes keep their text
// form and order; a Super or Hyper prefix anywhere in the chain switches
// the whole key to a kitty press encoding on the hex channel, because the
// plain channel only understands C-, M- and S-.
func Resolve(spec string) Resolved {
	name, textPrefix, bits, needHex := splitSpec(spec)
	if needHex {
		return Resolved{Hex: kittyEncode(name, bits, eventPress)}
	}
	return Resolved{Plain: textPrefix + name}
}

// KittyPress encodes a key spec as a kitty-protocol press event.
func KittyPress(spec string) string {
	name, _, bits, _ := splitSpec(spec)
	return kittyEncode(name, bits, eventPress)
}

// KittyRelease encodes a key spec as a kitty-protocol release event.
func KittyRelease(spec string) string {
	name, _, bits, _ := splitSpec(spec)
	return kittyEncode(name, bits, eventRelease)
}

// kittyEncode renders ESC [ codepoint ; modifiers : event u in hex form.
func kittyEncode(name string, bits, event int) string {
	seq := fmt.Sprintf("\x1b[%d;%d:%du", codepoint(name), bits+1, event)
	return rawseq.HexString([]byte(seq))
}

// codepoint resolves the protocol key identifier for a canonical name.
func codepoint(name string) int {
	if cp, ok := controlCodepoints[name]; ok {
		return cp
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return 0
	}
	return int(r)
}

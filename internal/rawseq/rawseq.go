// Package rawseq decodes the raw escape mini-language used by raw actions
// and formats byte sequences for the hex-mode channel.
//
// The hex-mode channel (tmux send-keys -H) takes bytes as space-separated
// two-digit lowercase hex values; every encoder in this repository funnels
// through HexString to produce that form.
package rawseq

import (
	"fmt"
	"strconv"
	"strings"
)

// HexString renders data as space-separated two-digit lowercase hex bytes.
func HexString(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}

// ParseRawString decodes a string with backslash escapes into hex-channel
// form. Recognized escapes: \e (ESC), \xNN (byte value, two hex digits),
// \n, \t, \r, \\ and \". Any other backslash pair is copied through
// verbatim, backslash included. A \x with fewer than two characters
// remaining is too short and is copied literally as well.
func ParseRawString(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			out = append(out, c)
			continue
		}
		next := s[i+1]
		switch next {
		case 'e':
			out = append(out, 0x1b)
			i++
		case 'x':
			if i+3 < len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					out = append(out, byte(v))
					i += 3
					break
				}
			}
			// Too short or not hex: keep the pair as-is.
			out = append(out, '\\', 'x')
			i++
		case 'n':
			out = append(out, '\n')
			i++
		case 't':
			out = append(out, '\t')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case '\\':
			out = append(out, '\\')
			i++
		case '"':
			out = append(out, '"')
			i++
		default:
			out = append(out, '\\', next)
			i++
		}
	}
	return HexString(out)
}

// ParseRawHex normalizes a string already in space-separated hex form:
// runs of whitespace collapse to single spaces and the edges are trimmed.
// Hex well-formedness is not checked here; a malformed byte is the
// receiving sink's problem.
func ParseRawHex(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

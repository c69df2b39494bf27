package rawseq

import "testing"

func TestHexString(t *testing.T) {
	got := HexString([]byte("\x1b[H"))
	if got != "1b 5b 48" {
		t.Errorf("HexString: got %q, want %q", got, "1b 5b 48")
	}
}

func TestHexString_Empty(t *testing.T) {
	if got := HexString(nil); got != "" {
		t.Errorf("HexString(nil): got %q, want empty", got)
	}
}

func TestParseRawString_EscapeE(t *testing.T) {
	got := ParseRawString(`\e[H`)
	if got != "1b 5b 48" {
		t.Errorf(`ParseRawString(\e[H): got %q, want "1b 5b 48"`, got)
	}
}

func TestParseRawString_HexByte(t *testing.T) {
	got := ParseRawString(`\x1b[2J`)
	if got != "1b 5b 32 4a" {
		t.Errorf(`ParseRawString(\x1b[2J): got %q, want "1b 5b 32 4a"`, got)
	}
}

func TestParseRawString_CommonEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\n`, "0a"},
		{`\t`, "09"},
		{`\r`, "0d"},
		{`\\`, "5c"},
		{`\"`, "22"},
	}
	for _, tt := range tests {
		if got := ParseRawString(tt.in); got != tt.want {
			t.Errorf("ParseRawString(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRawString_PlainText(t *testing.T) {
	got := ParseRawString("ab")
	if got != "61 62" {
		t.Errorf("ParseRawString(ab): got %q, want %q", got, "61 62")
	}
}

func TestParseRawString_UnknownEscapePassesThrough(t *testing.T) {
	got := ParseRawString(`\q`)
	if got != "5c 71" {
		t.Errorf(`ParseRawString(\q): got %q, want "5c 71"`, got)
	}
}

func TestParseRawString_ShortHexEscape(t *testing.T) {
	// \x with fewer than two digits left is kept literally, no panic.
	got := ParseRawString(`\x4`)
	if got != "5c 78 34" {
		t.Errorf(`ParseRawString(\x4): got %q, want "5c 78 34"`, got)
	}
}

func TestParseRawString_TrailingBackslash(t *testing.T) {
	got := ParseRawString(`a\`)
	if got != "61 5c" {
		t.Errorf(`ParseRawString(a\): got %q, want "61 5c"`, got)
	}
}

func TestParseRawHex_NormalizesWhitespace(t *testing.T) {
	got := ParseRawHex("  1b   5b\t48\n")
	if got != "1b 5b 48" {
		t.Errorf("ParseRawHex: got %q, want %q", got, "1b 5b 48")
	}
}

func TestParseRawHex_AlreadyClean(t *testing.T) {
	in := "1b 5b 48"
	if got := ParseRawHex(in); got != in {
		t.Errorf("ParseRawHex(%q): got %q, want input unchanged", in, got)
	}
}

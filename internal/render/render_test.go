package render

import "testing"

func TestParse_PlainText(t *testing.T) {
	lines := Parse("hello\nworld")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0][0].Text != "hello" || lines[1][0].Text != "world" {
		t.Errorf("unexpected spans: %+v", lines)
	}
}

func TestParse_SGRSplitsSpans(t *testing.T) {
	lines := Parse("a\x1b[31mred\x1b[0mb")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	spans := lines[0]
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3: %+v", len(spans), spans)
	}
	if spans[1].Text != "red" || spans[1].Style.FG != "1" {
		t.Errorf("middle span: got %+v, want red text with FG 1", spans[1])
	}
	if spans[2].Style.FG != "" {
		t.Errorf("reset did not clear FG: %+v", spans[2])
	}
}

func TestParse_StyleCarriesAcrossLines(t *testing.T) {
	lines := Parse("\x1b[1mtop\nbottom")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !lines[1][0].Style.Bold {
		t.Error("bold should persist onto the next line")
	}
}

func TestParse_AttributeToggles(t *testing.T) {
	lines := Parse("\x1b[1;4ma\x1b[22mb")
	spans := lines[0]
	if !spans[0].Style.Bold || !spans[0].Style.Underline {
		t.Errorf("first span: got %+v, want bold underline", spans[0].Style)
	}
	if spans[1].Style.Bold {
		t.Error("22 should clear bold")
	}
	if !spans[1].Style.Underline {
		t.Error("22 must not clear underline")
	}
}

func TestParse_256Color(t *testing.T) {
	lines := Parse("\x1b[38;5;208mx")
	if got := lines[0][0].Style.FG; got != "208" {
		t.Errorf("FG: got %q, want %q", got, "208")
	}
}

func TestParse_TrueColor(t *testing.T) {
	lines := Parse("\x1b[48;2;255;0;128mx")
	if got := lines[0][0].Style.BG; got != "#ff0080" {
		t.Errorf("BG: got %q, want %q", got, "#ff0080")
	}
}

func TestParse_BrightColors(t *testing.T) {
	lines := Parse("\x1b[91mx")
	if got := lines[0][0].Style.FG; got != "9" {
		t.Errorf("FG: got %q, want %q", got, "9")
	}
}

func TestParse_NonSGRSequencesDropped(t *testing.T) {
	lines := Parse("a\x1b[2Jb\x1b[Hc")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	var text string
	for _, s := range lines[0] {
		text += s.Text
	}
	if text != "abc" {
		t.Errorf("got %q, want %q", text, "abc")
	}
}

func TestStrip(t *testing.T) {
	got := Strip("\x1b[31mred\x1b[0m and \x1b[1mbold\x1b[0m")
	if got != "red and bold" {
		t.Errorf("got %q, want %q", got, "red and bold")
	}
}

func TestInsertCursorMarker_Overlay(t *testing.T) {
	got := InsertCursorMarker("abcdef", 2, 0)
	if got != "ab"+CursorMarker+"def" {
		t.Errorf("got %q", got)
	}
}

func TestInsertCursorMarker_PastLineEnd(t *testing.T) {
	got := InsertCursorMarker("ab", 4, 0)
	if got != "ab  "+CursorMarker {
		t.Errorf("got %q", got)
	}
}

func TestInsertCursorMarker_SecondLine(t *testing.T) {
	got := InsertCursorMarker("one\ntwo", 0, 1)
	if got != "one\n"+CursorMarker+"wo" {
		t.Errorf("got %q", got)
	}
}

func TestInsertCursorMarker_OutOfRange(t *testing.T) {
	content := "one\ntwo"
	if got := InsertCursorMarker(content, 0, 9); got != content {
		t.Errorf("row out of range: got %q, want unchanged", got)
	}
	if got := InsertCursorMarker(content, -1, 0); got != content {
		t.Errorf("negative column: got %q, want unchanged", got)
	}
}

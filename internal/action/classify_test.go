package action

import (
	"strings"
	"testing"

	"olympos.io/encoding/edn"

	"github.com/timvw/pane-pilot/internal/model"
)

func TestClassify_String(t *testing.T) {
	a, err := Classify("ls -la")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindText {
		t.Errorf("kind: got %v, want %v", a.Kind, model.KindText)
	}
	if a.Text != "ls -la" {
		t.Errorf("text: got %q, want %q", a.Text, "ls -la")
	}
}

func TestClassify_Keyword(t *testing.T) {
	a, err := Classify(edn.Keyword("C-c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindKey || a.Key != "C-c" {
		t.Errorf("got kind=%v key=%q, want key C-c", a.Kind, a.Key)
	}
}

func TestClassify_BareSymbol(t *testing.T) {
	a, err := Classify(edn.Symbol("Enter"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindKey || a.Key != "Enter" {
		t.Errorf("got kind=%v key=%q, want key Enter", a.Kind, a.Key)
	}
}

func TestClassify_TextRepeat(t *testing.T) {
	a, err := Classify([]any{"ab", int64(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindRepeat {
		t.Fatalf("kind: got %v, want %v", a.Kind, model.KindRepeat)
	}
	if a.Text != "ab" || a.Count != 3 {
		t.Errorf("got text=%q count=%d, want ab 3", a.Text, a.Count)
	}
	if a.DelayMs != model.DelayUnset {
		t.Errorf("delay: got %d, want unset", a.DelayMs)
	}
}

func TestClassify_KeyRepeatWithDelay(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("Up"), int64(3), edn.Keyword("delay"), int64(50)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindRepeat || a.Key != "Up" || a.Count != 3 || a.DelayMs != 50 {
		t.Errorf("got %+v, want key Up repeated 3x with 50ms delay", a)
	}
}

func TestClassify_RepeatRejectsDanglingDelay(t *testing.T) {
	_, err := Classify([]any{"x", int64(2), edn.Keyword("delay")})
	if err == nil {
		t.Fatal("expected error for :delay without a value")
	}
}

func TestClassify_Sleep(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("Sleep"), int64(500)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindSleep || a.Ms != 500 {
		t.Errorf("got %+v, want Sleep 500", a)
	}
}

func TestClassify_Click(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("Click"), int64(10), int64(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindClick || a.X != 10 || a.Y != 5 {
		t.Errorf("got %+v, want Click at 10,5", a)
	}
	if a.Button != model.ButtonLeft {
		t.Errorf("button: got %d, want left", a.Button)
	}
}

func TestClassify_ClickButtons(t *testing.T) {
	tests := []struct {
		tag  string
		want model.MouseButton
	}{
		{"Click", model.ButtonLeft},
		{"RClick", model.ButtonRight},
		{"MClick", model.ButtonMiddle},
	}
	for _, tt := range tests {
		a, err := Classify([]any{edn.Symbol(tt.tag), int64(1), int64(1)})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.tag, err)
		}
		if a.Button != tt.want {
			t.Errorf("%s: button got %d, want %d", tt.tag, a.Button, tt.want)
		}
	}
}

func TestClassify_ClickModifiers(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("Click"), int64(1), int64(2), edn.Keyword("shift"), edn.Keyword("ctrl")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Mods) != 2 || a.Mods[0] != model.MouseShift || a.Mods[1] != model.MouseCtrl {
		t.Errorf("mods: got %v, want [shift ctrl]", a.Mods)
	}
}

func TestClassify_MetaIsAlt(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("Click"), int64(1), int64(1), edn.Keyword("meta")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Mods) != 1 || a.Mods[0] != model.MouseAlt {
		t.Errorf("mods: got %v, want [alt]", a.Mods)
	}
}

func TestClassify_HalfClicks(t *testing.T) {
	press, err := Classify([]any{edn.Symbol("Click+"), int64(3), int64(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if press.Kind != model.KindClickPress {
		t.Errorf("Click+: got %v, want %v", press.Kind, model.KindClickPress)
	}
	release, err := Classify([]any{edn.Symbol("Click-"), int64(3), int64(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if release.Kind != model.KindClickRelease {
		t.Errorf("Click-: got %v, want %v", release.Kind, model.KindClickRelease)
	}
}

func TestClassify_Move(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("Move"), int64(7), int64(8)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindMove || a.X != 7 || a.Y != 8 {
		t.Errorf("got %+v, want Move 7,8", a)
	}
}

func TestClassify_MoveRejectsModifiers(t *testing.T) {
	_, err := Classify([]any{edn.Symbol("Move"), int64(1), int64(1), edn.Keyword("shift")})
	if err == nil {
		t.Fatal("expected error for Move with modifiers")
	}
}

func TestClassify_ScrollDefaults(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("ScrollUp"), int64(10), int64(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindScrollUp || a.Count != 1 {
		t.Errorf("got %+v, want single ScrollUp", a)
	}
	if a.DelayMs != model.DelayUnset {
		t.Errorf("delay: got %d, want unset", a.DelayMs)
	}
}

func TestClassify_ScrollCountAndDelay(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("ScrollDown"), int64(10), int64(5), int64(3), edn.Keyword("delay"), int64(50)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindScrollDown || a.X != 10 || a.Y != 5 || a.Count != 3 || a.DelayMs != 50 {
		t.Errorf("got %+v, want ScrollDown 10,5 x3 delay 50", a)
	}
}

func TestClassify_ScrollRejectsExtraNumbers(t *testing.T) {
	_, err := Classify([]any{edn.Symbol("ScrollUp"), int64(1), int64(2), int64(3), int64(4)})
	if err == nil {
		t.Fatal("expected error for four positional numbers")
	}
}

func TestClassify_Raw(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("Raw"), `\e[H`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindRaw || a.Text != `\e[H` {
		t.Errorf("got %+v, want Raw \\e[H", a)
	}
}

func TestClassify_RawHex(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("RawHex"), "1b 5b 48"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != model.KindRawHex || a.Text != "1b 5b 48" {
		t.Errorf("got %+v, want RawHex", a)
	}
}

func TestClassify_RawRejectsNonString(t *testing.T) {
	_, err := Classify([]any{edn.Symbol("Raw"), int64(27)})
	if err == nil {
		t.Fatal("expected error for numeric raw payload")
	}
}

func TestClassify_KeyEventPhases(t *testing.T) {
	tests := []struct {
		phase   any
		release bool
	}{
		{edn.Symbol("down"), false},
		{edn.Symbol("press"), false},
		{edn.Symbol("up"), true},
		{edn.Keyword("release"), true},
	}
	for _, tt := range tests {
		a, err := Classify([]any{edn.Symbol("C-a"), tt.phase})
		if err != nil {
			t.Fatalf("phase %v: unexpected error: %v", tt.phase, err)
		}
		if a.Kind != model.KindKeyEvent {
			t.Fatalf("phase %v: kind got %v, want %v", tt.phase, a.Kind, model.KindKeyEvent)
		}
		if a.Release != tt.release {
			t.Errorf("phase %v: release got %v, want %v", tt.phase, a.Release, tt.release)
		}
	}
}

func TestClassify_FloatCoordinatesAccepted(t *testing.T) {
	a, err := Classify([]any{edn.Symbol("Click"), float64(10), float64(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.X != 10 || a.Y != 5 {
		t.Errorf("got %d,%d, want 10,5", a.X, a.Y)
	}
}

func TestClassify_MalformedIncludesHint(t *testing.T) {
	_, err := Classify(int64(42))
	if err == nil {
		t.Fatal("expected error for a bare number")
	}
	if !strings.Contains(err.Error(), QuotingHint) {
		t.Errorf("error should carry the quoting hint, got: %v", err)
	}
	if !strings.Contains(err.Error(), "int64") {
		t.Errorf("error should name the observed type, got: %v", err)
	}
}

func TestClassify_EmptyVector(t *testing.T) {
	if _, err := Classify([]any{}); err == nil {
		t.Fatal("expected error for an empty vector")
	}
}

func TestClassify_UnknownVectorShape(t *testing.T) {
	// A key symbol followed by a string matches no form.
	if _, err := Classify([]any{edn.Symbol("C-a"), "oops"}); err == nil {
		t.Fatal("expected error for unrecognized vector shape")
	}
}

func TestClassify_ClickMissingCoordinates(t *testing.T) {
	if _, err := Classify([]any{edn.Symbol("Click"), int64(10)}); err == nil {
		t.Fatal("expected error for a click without both coordinates")
	}
}

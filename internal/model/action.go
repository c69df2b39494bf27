package model

// ActionKind identifies the shape of an Action. The set is closed: the
// dispatcher matches it exhaustively and treats anything else as malformed.
type ActionKind int

const (
	// KindText sends literal text over the plain-text channel.
	KindText ActionKind = iota
	// KindKey sends a single (possibly modified) key.
	KindKey
	// KindRepeat sends a text or key target N times.
	KindRepeat
	// KindSleep blocks the engine without touching either channel.
	KindSleep
	// KindClick is a full press+release mouse click.
	KindClick
	// KindClickPress is the press half of a click only.
	KindClickPress
	// KindClickRelease is the release half of a click only.
	KindClickRelease
	// KindMove is a drag-move mouse event.
	KindMove
	// KindScrollUp and KindScrollDown are wheel events, repeatable.
	KindScrollUp
	KindScrollDown
	// KindRaw sends an escape-language string as raw bytes.
	KindRaw
	// KindRawHex sends an already hex-formatted byte string.
	KindRawHex
	// KindKeyEvent sends an explicit key press or release.
	KindKeyEvent
)

var kindNames = map[ActionKind]string{
	KindText:         "text",
	KindKey:          "key",
	KindRepeat:       "repeat",
	KindSleep:        "sleep",
	KindClick:        "click",
	KindClickPress:   "click-press",
	KindClickRelease: "click-release",
	KindMove:         "move",
	KindScrollUp:     "scroll-up",
	KindScrollDown:   "scroll-down",
	KindRaw:          "raw",
	KindRawHex:       "raw-hex",
	KindKeyEvent:     "key-event",
}

func (k ActionKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MouseButton is an SGR mouse-protocol button code.
type MouseButton int

const (
	ButtonLeft   MouseButton = 0
	ButtonMiddle MouseButton = 1
	ButtonRight  MouseButton = 2

	// ButtonMove is the protocol's reserved drag-motion code.
	ButtonMove MouseButton = 35

	// ScrollUpBase and ScrollDownBase are the wheel event base codes.
	ScrollUpBase   MouseButton = 64
	ScrollDownBase MouseButton = 65
)

// MouseModifier is an SGR mouse-protocol modifier bit. The scale is
// protocol-specific and deliberately distinct from the kitty keyboard bits.
type MouseModifier int

const (
	MouseShift MouseModifier = 4
	MouseAlt   MouseModifier = 8
	MouseCtrl  MouseModifier = 16
)

// DelayUnset marks an absent :delay option on repeatable actions.
// The engine substitutes its own inter-action delay.
const DelayUnset = -1

// Action is one step of an input script. Kind selects the variant; only
// the fields documented for that variant are meaningful.
//
// The zero Action is a KindText send of the empty string.
type Action struct {
	Kind ActionKind

	// Text is the payload for KindText, KindRaw, KindRawHex, and the
	// target of a text repeat.
	Text string

	// Key is the key spec for KindKey, KindKeyEvent, and the target of a
	// key repeat. Exactly one of Text/Key is set for KindRepeat.
	Key string

	// Count is the repetition count for KindRepeat and scrolls.
	Count int
	// DelayMs is the pause between repetitions, or DelayUnset.
	DelayMs int

	// Ms is the KindSleep duration.
	Ms int

	// X, Y are 1-based pane-relative coordinates for mouse actions.
	X, Y int
	// Button selects the clicked button for KindClick.
	Button MouseButton
	// Mods are the active mouse modifiers for click and scroll actions.
	Mods []MouseModifier

	// Release is the KindKeyEvent phase: false = press, true = release.
	Release bool
}

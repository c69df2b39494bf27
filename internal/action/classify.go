// Package action classifies parsed EDN values into engine actions.
//
// The action language is small: a string literal is text to type, a bare
// symbol is a key spec, and a vector is a parameterized action selected
// by its first element. Classification is shape-driven and exhaustive —
// a value matching no known shape is an error, never a silent no-op.
package action

import (
	"fmt"

	"olympos.io/encoding/edn"

	"github.com/timvw/pane-pilot/internal/model"
)

// QuotingHint is appended to classification failures. Bare words in a
// payload are read as key specs, which trips up users typing sentences.
const QuotingHint = `hint: free-standing text must be written as a quoted string literal ("like this"); a bare word is read as a key spec`

// actionTags maps a vector's leading symbol to its parser.
var actionTags = map[string]func(args []any) (model.Action, error){
	"Sleep":      classifySleep,
	"Click":      classifyClick(model.ButtonLeft),
	"RClick":     classifyClick(model.ButtonRight),
	"MClick":     classifyClick(model.ButtonMiddle),
	"Click+":     classifyHalfClick(model.KindClickPress),
	"Click-":     classifyHalfClick(model.KindClickRelease),
	"Move":       classifyMove,
	"ScrollUp":   classifyScroll(model.KindScrollUp),
	"ScrollDown": classifyScroll(model.KindScrollDown),
	"Raw":        classifyRawText(model.KindRaw),
	"RawHex":     classifyRawText(model.KindRawHex),
}

// phases are the markers accepted by the explicit key-event form.
var phases = map[string]bool{
	"down":    true,
	"up":      false,
	"press":   true,
	"release": false,
}

// Classify maps one parsed value onto the action union.
func Classify(v any) (model.Action, error) {
	switch val := v.(type) {
	case string:
		return model.Action{Kind: model.KindText, Text: val}, nil
	case edn.Keyword:
		return model.Action{Kind: model.KindKey, Key: string(val)}, nil
	case edn.Symbol:
		return model.Action{Kind: model.KindKey, Key: string(val)}, nil
	case []any:
		return classifyVector(v, val)
	}
	return model.Action{}, malformed(v)
}

func classifyVector(raw any, items []any) (model.Action, error) {
	if len(items) == 0 {
		return model.Action{}, malformed(raw)
	}
	head := items[0]
	args := items[1:]

	// Leading text: repeat of a text send.
	if text, ok := head.(string); ok {
		count, delay, err := repeatArgs(raw, args)
		if err != nil {
			return model.Action{}, err
		}
		return model.Action{Kind: model.KindRepeat, Text: text, Count: count, DelayMs: delay}, nil
	}

	name, ok := symbolName(head)
	if !ok {
		return model.Action{}, malformed(raw)
	}

	// Recognized action tag.
	if parse, ok := actionTags[name]; ok {
		a, err := parse(args)
		if err != nil {
			return model.Action{}, fmt.Errorf("%v: %w", raw, err)
		}
		return a, nil
	}

	// Key with a repeat count: [C-b 3] or [C-b 3 :delay 50].
	if len(args) >= 1 {
		if _, isCount := asInt(args[0]); isCount {
			count, delay, err := repeatArgs(raw, args)
			if err != nil {
				return model.Action{}, err
			}
			return model.Action{Kind: model.KindRepeat, Key: name, Count: count, DelayMs: delay}, nil
		}
	}

	// Key with an explicit phase: [C-a down], [x up], [Shift press].
	if len(args) == 1 {
		if phase, ok := symbolOrKeywordName(args[0]); ok {
			if down, known := phases[phase]; known {
				return model.Action{Kind: model.KindKeyEvent, Key: name, Release: !down}, nil
			}
		}
	}

	return model.Action{}, malformed(raw)
}

func classifySleep(args []any) (model.Action, error) {
	if len(args) != 1 {
		return model.Action{}, fmt.Errorf("Sleep takes a single duration in ms")
	}
	ms, ok := asInt(args[0])
	if !ok {
		return model.Action{}, fmt.Errorf("Sleep duration must be a number, got %v (type %T)", args[0], args[0])
	}
	return model.Action{Kind: model.KindSleep, Ms: ms}, nil
}

func classifyClick(button model.MouseButton) func([]any) (model.Action, error) {
	return func(args []any) (model.Action, error) {
		x, y, mods, err := pointArgs(args)
		if err != nil {
			return model.Action{}, err
		}
		return model.Action{Kind: model.KindClick, X: x, Y: y, Button: button, Mods: mods}, nil
	}
}

func classifyHalfClick(kind model.ActionKind) func([]any) (model.Action, error) {
	return func(args []any) (model.Action, error) {
		x, y, mods, err := pointArgs(args)
		if err != nil {
			return model.Action{}, err
		}
		return model.Action{Kind: kind, X: x, Y: y, Button: model.ButtonLeft, Mods: mods}, nil
	}
}

func classifyMove(args []any) (model.Action, error) {
	x, y, mods, err := pointArgs(args)
	if err != nil {
		return model.Action{}, err
	}
	if len(mods) > 0 {
		return model.Action{}, fmt.Errorf("Move takes no modifiers")
	}
	return model.Action{Kind: model.KindMove, X: x, Y: y}, nil
}

func classifyScroll(kind model.ActionKind) func([]any) (model.Action, error) {
	return func(args []any) (model.Action, error) {
		var nums []int
		mods := []model.MouseModifier(nil)
		delay := model.DelayUnset
		for i := 0; i < len(args); i++ {
			if n, ok := asInt(args[i]); ok {
				nums = append(nums, n)
				continue
			}
			name, ok := symbolOrKeywordName(args[i])
			if !ok {
				return model.Action{}, fmt.Errorf("unexpected scroll argument %v (type %T)", args[i], args[i])
			}
			if name == "delay" {
				if i+1 >= len(args) {
					return model.Action{}, fmt.Errorf(":delay needs a value")
				}
				d, ok := asInt(args[i+1])
				if !ok {
					return model.Action{}, fmt.Errorf(":delay must be a number, got %v", args[i+1])
				}
				delay = d
				i++
				continue
			}
			mod, ok := mouseModifiers[name]
			if !ok {
				return model.Action{}, fmt.Errorf("unknown modifier :%s", name)
			}
			mods = append(mods, mod)
		}
		if len(nums) < 2 || len(nums) > 3 {
			return model.Action{}, fmt.Errorf("scroll takes x y and an optional count")
		}
		count := 1
		if len(nums) == 3 {
			count = nums[2]
		}
		return model.Action{Kind: kind, X: nums[0], Y: nums[1], Count: count, DelayMs: delay, Mods: mods}, nil
	}
}

func classifyRawText(kind model.ActionKind) func([]any) (model.Action, error) {
	return func(args []any) (model.Action, error) {
		if len(args) != 1 {
			return model.Action{}, fmt.Errorf("raw actions take a single string")
		}
		text, ok := args[0].(string)
		if !ok {
			return model.Action{}, fmt.Errorf("raw payload must be a string, got %v (type %T)", args[0], args[0])
		}
		return model.Action{Kind: kind, Text: text}, nil
	}
}

var mouseModifiers = map[string]model.MouseModifier{
	"shift": model.MouseShift,
	"alt":   model.MouseAlt,
	"meta":  model.MouseAlt,
	"ctrl":  model.MouseCtrl,
}

// pointArgs parses x y followed by optional modifier keywords.
func pointArgs(args []any) (x, y int, mods []model.MouseModifier, err error) {
	if len(args) < 2 {
		return 0, 0, nil, fmt.Errorf("need x and y coordinates")
	}
	x, okX := asInt(args[0])
	y, okY := asInt(args[1])
	if !okX || !okY {
		return 0, 0, nil, fmt.Errorf("coordinates must be numbers, got %v %v", args[0], args[1])
	}
	for _, a := range args[2:] {
		name, ok := symbolOrKeywordName(a)
		if !ok {
			return 0, 0, nil, fmt.Errorf("unexpected argument %v (type %T)", a, a)
		}
		mod, ok := mouseModifiers[name]
		if !ok {
			return 0, 0, nil, fmt.Errorf("unknown modifier :%s", name)
		}
		mods = append(mods, mod)
	}
	return x, y, mods, nil
}

// repeatArgs parses a repeat count plus an optional :delay ms pair.
// The count itself is not range-checked; a non-positive count simply
// sends nothing.
func repeatArgs(raw any, args []any) (count, delay int, err error) {
	delay = model.DelayUnset
	if len(args) == 0 {
		return 0, 0, malformed(raw)
	}
	count, ok := asInt(args[0])
	if !ok {
		return 0, 0, malformed(raw)
	}
	switch len(args) {
	case 1:
		return count, delay, nil
	case 3:
		name, ok := symbolOrKeywordName(args[1])
		if !ok || name != "delay" {
			return 0, 0, malformed(raw)
		}
		delay, ok = asInt(args[2])
		if !ok {
			return 0, 0, malformed(raw)
		}
		return count, delay, nil
	}
	return 0, 0, malformed(raw)
}

func symbolName(v any) (string, bool) {
	s, ok := v.(edn.Symbol)
	if !ok {
		return "", false
	}
	return string(s), true
}

func symbolOrKeywordName(v any) (string, bool) {
	switch s := v.(type) {
	case edn.Symbol:
		return string(s), true
	case edn.Keyword:
		return string(s), true
	}
	return "", false
}

// asInt accepts any numeric representation the EDN reader may produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	}
	return 0, false
}

// malformed builds the classification error: the offending value, its
// observed type, and the quoting hint.
func malformed(v any) error {
	return fmt.Errorf("cannot interpret %v (type %T) as an action; %s", v, v, QuotingHint)
}

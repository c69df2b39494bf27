package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/timvw/pane-pilot/internal/action"
	"github.com/timvw/pane-pilot/internal/keys"
	"github.com/timvw/pane-pilot/internal/model"
	"github.com/timvw/pane-pilot/internal/mouse"
	"github.com/timvw/pane-pilot/internal/rawseq"
)

// dispatch classifies one parsed value and applies it.
func (e *Engine) dispatch(ctx context.Context, v any) error {
	a, err := action.Classify(v)
	if err != nil {
		return err
	}
	return e.apply(ctx, a)
}

// apply routes an action to its handler. The switch is exhaustive over the
// action union; an unknown kind is a bug and fails loudly.
func (e *Engine) apply(ctx context.Context, a model.Action) error {
	e.Metrics.RecordAction(ctx, a.Kind.String())

	switch a.Kind {
	case model.KindText:
		e.sendText(ctx, a.Text)

	case model.KindKey:
		e.sendKey(ctx, a.Key)

	case model.KindRepeat:
		e.repeat(ctx, a)

	case model.KindSleep:
		e.pause(time.Duration(a.Ms) * time.Millisecond)

	case model.KindClick:
		e.sendHex(ctx, mouse.Press(a.X, a.Y, a.Button, a.Mods))
		e.sendHex(ctx, mouse.Release(a.X, a.Y, a.Button, a.Mods))

	case model.KindClickPress:
		e.sendHex(ctx, mouse.Press(a.X, a.Y, a.Button, a.Mods))

	case model.KindClickRelease:
		e.sendHex(ctx, mouse.Release(a.X, a.Y, a.Button, a.Mods))

	case model.KindMove:
		e.sendHex(ctx, mouse.Move(a.X, a.Y))

	case model.KindScrollUp, model.KindScrollDown:
		e.scroll(ctx, a)

	case model.KindRaw:
		e.sendHex(ctx, rawseq.ParseRawString(a.Text))

	case model.KindRawHex:
		e.sendHex(ctx, rawseq.ParseRawHex(a.Text))

	case model.KindKeyEvent:
		if a.Release {
			e.sendHex(ctx, keys.KittyRelease(a.Key))
		} else {
			e.sendHex(ctx, keys.KittyPress(a.Key))
		}

	default:
		return fmt.Errorf("unhandled action kind %d", a.Kind)
	}
	return nil
}

// sendKey resolves a key spec and delivers it on whichever channel the
// resolution demands.
func (e *Engine) sendKey(ctx context.Context, spec string) {
	r := keys.Resolve(spec)
	if r.IsHex() {
		e.sendHex(ctx, r.Hex)
		return
	}
	e.sendText(ctx, r.Plain)
}

// repeat sends a text or key target Count times. The pause between
// repetitions is the action's own :delay when given, otherwise the
// engine's inter-action delay; there is never a pause after the last.
func (e *Engine) repeat(ctx context.Context, a model.Action) {
	d := e.repeatDelay(a)
	for i := 0; i < a.Count; i++ {
		if i > 0 {
			e.pause(d)
		}
		if a.Key != "" {
			e.sendKey(ctx, a.Key)
		} else {
			e.sendText(ctx, a.Text)
		}
	}
}

// scroll emits Count wheel events, paced like repeat.
func (e *Engine) scroll(ctx context.Context, a model.Action) {
	dir := mouse.ScrollUp
	if a.Kind == model.KindScrollDown {
		dir = mouse.ScrollDown
	}
	payload := mouse.Scroll(a.X, a.Y, dir, a.Mods)
	d := e.repeatDelay(a)
	for i := 0; i < a.Count; i++ {
		if i > 0 {
			e.pause(d)
		}
		e.sendHex(ctx, payload)
	}
}

func (e *Engine) repeatDelay(a model.Action) time.Duration {
	if a.DelayMs != model.DelayUnset {
		return time.Duration(a.DelayMs) * time.Millisecond
	}
	return e.Delay
}

func (e *Engine) sendText(ctx context.Context, s string) {
	e.Metrics.RecordSinkCall(ctx, "text")
	if e.SendText != nil {
		e.SendText(s)
	}
}

func (e *Engine) sendHex(ctx context.Context, s string) {
	e.Metrics.RecordSinkCall(ctx, "hex")
	if e.SendHex != nil {
		e.SendHex(s)
	}
}

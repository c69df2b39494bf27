// Package engine drives action sequences against a pane.
//
// The engine is strictly sequential: one action fully completes, including
// any trailing pause, before the next is read or executed. All suspension
// is synchronous blocking; there is no parallelism and no mid-action
// cancellation. The only shared resources are the two caller-owned sinks,
// and at most one of them is called per physical sub-event.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"olympos.io/encoding/edn"

	"github.com/timvw/pane-pilot/internal/action"
	telem "github.com/timvw/pane-pilot/internal/otel"
)

// DefaultDelayMs is the inter-action delay applied when nothing else is
// configured. Zero disables inter-action pausing but leaves Sleep actions
// and explicit repeat delays intact.
const DefaultDelayMs = 30

// Reader produces parsed action values one at a time. Next returns io.EOF
// when the source is exhausted. The engine never reads ahead: Next is not
// called again until the previous action has fully executed.
type Reader interface {
	Next() (any, error)
}

// Engine executes actions through two caller-supplied sinks.
//
// SendText receives plain key names and literal text; SendHex receives
// protocol-encoded byte sequences as space-separated hex. The engine does
// not inspect delivery results — surfacing failures is the sink's job.
type Engine struct {
	SendText func(string)
	SendHex  func(string)

	// Delay is the pause between consecutive actions. Never applied after
	// the last action of a batch or before the first of a stream.
	Delay time.Duration

	// Sleep replaces time.Sleep when set. Tests inject a no-op here.
	Sleep func(time.Duration)

	// Metrics records dispatch counters when set. Nil-safe.
	Metrics *telem.Metrics
}

// Run executes a finite in-memory sequence of parsed action values.
func (e *Engine) Run(ctx context.Context, actions []any) error {
	for i, v := range actions {
		if i > 0 {
			e.pause(e.Delay)
		}
		if err := e.dispatch(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// RunStream executes actions from r until io.EOF. The source may be
// unbounded; the next value is only pulled once the current action has
// completed, so at most one action is ever in flight.
func (e *Engine) RunStream(ctx context.Context, r Reader) error {
	first := true
	for {
		v, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read action: %w", err)
		}
		if !first {
			e.pause(e.Delay)
		}
		first = false
		if err := e.dispatch(ctx, v); err != nil {
			return err
		}
	}
}

// RunPayload parses a textual payload as a stream of EDN forms, one
// action per form, and executes it.
func (e *Engine) RunPayload(ctx context.Context, payload string) error {
	return e.RunStream(ctx, NewEDNReader(strings.NewReader(payload)))
}

// Execute is the top-level convenience around RunPayload: any parse or
// dispatch failure is reported to stderr with the quoting hint before the
// error is returned. Execution does not resume past a failed action.
func (e *Engine) Execute(ctx context.Context, payload string) error {
	err := e.RunPayload(ctx, payload)
	if err == nil {
		return nil
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if !strings.Contains(err.Error(), action.QuotingHint) {
		fmt.Fprintln(os.Stderr, action.QuotingHint)
	}
	return err
}

// pause blocks for d. A zero or negative d is a no-op.
func (e *Engine) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	if e.Sleep != nil {
		e.Sleep(d)
		return
	}
	time.Sleep(d)
}

// ednReader adapts an EDN decoder to the Reader contract.
type ednReader struct {
	dec *edn.Decoder
}

// NewEDNReader returns a Reader that decodes one EDN form per Next call.
func NewEDNReader(r io.Reader) Reader {
	return &ednReader{dec: edn.NewDecoder(r)}
}

func (r *ednReader) Next() (any, error) {
	var v any
	if err := r.dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

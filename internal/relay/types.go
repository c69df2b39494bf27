// Package relay accepts injection requests over a unix datagram socket.
//
// Each datagram is one EDN map: {:target "session:0.0" :actions [...]}.
// Requests are validated and executed sequentially through the engine;
// senders get no reply. Recent deliveries are kept in a TTL-bounded store
// for periodic reporting.
package relay

import (
	"fmt"
	"strings"
	"time"
)

// Request is one injection request as received on the socket.
type Request struct {
	// Target is the pane to drive, in "session:window.pane" form.
	Target string `edn:"target"`
	// Actions is the parsed action sequence to execute.
	Actions []any `edn:"actions"`
	// DelayMs optionally overrides the engine's inter-action delay for
	// this request. Negative means "use the daemon default".
	DelayMs int `edn:"delay-ms"`
}

// Validate checks the request shape before execution.
func (r Request) Validate() error {
	if !isValidTarget(r.Target) {
		return fmt.Errorf("invalid target %q", r.Target)
	}
	if len(r.Actions) == 0 {
		return fmt.Errorf("actions are required")
	}
	return nil
}

// Delivery records the outcome of one executed request.
type Delivery struct {
	Target  string    `json:"target"`
	Actions int       `json:"actions"`
	TS      time.Time `json:"ts"`
	// Err is the execution failure, empty on success.
	Err string `json:"err,omitempty"`
}

// isValidTarget checks for tmux target format: session:window.pane
func isValidTarget(target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	colon := strings.LastIndex(target, ":")
	if colon <= 0 || colon == len(target)-1 {
		return false
	}
	rest := target[colon+1:]
	dot := strings.LastIndex(rest, ".")
	if dot <= 0 || dot == len(rest)-1 {
		return false
	}
	return true
}

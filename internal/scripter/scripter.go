// Package scripter turns natural-language instructions into action
// payloads using an LLM.
//
// The LLM writes the EDN action language; Go code only builds the prompt,
// strips the response down to the payload, and accounts for tokens. The
// generated payload is never executed here — callers validate and decide.
package scripter

import (
	"context"

	"github.com/timvw/pane-pilot/internal/model"
)

// Scripter generates an action payload from an instruction.
type Scripter interface {
	// Script produces an EDN action payload carrying out instruction.
	// paneContent, when non-empty, is the current capture of the target
	// pane and gives the model context to aim at.
	Script(ctx context.Context, instruction, paneContent string) (*model.Script, error)

	// Provider returns the provider name (e.g., "anthropic", "openai").
	Provider() string

	// Model returns the model name used for scripting.
	Model() string
}

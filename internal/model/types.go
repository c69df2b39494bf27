package model

// Pane represents a terminal multiplexer pane.
type Pane struct {
	// Target is the fully qualified pane identifier (e.g., "session:0.0").
	Target string `json:"target"`
	// Session is the session name.
	Session string `json:"session"`
	// Window is the window index.
	Window int `json:"window"`
	// Pane is the pane index.
	Pane int `json:"pane"`
	// PID is the pane's shell process ID.
	PID int `json:"pid"`
	// Command is the current command running in the pane (e.g., "node", "bash").
	Command string `json:"command"`
	// Width and Height are the pane dimensions in cells.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Session represents a terminal multiplexer session.
type Session struct {
	// Name is the session name.
	Name string `json:"name"`
	// Windows is the number of windows in the session.
	Windows int `json:"windows"`
	// Attached indicates whether a client is currently attached.
	Attached bool `json:"attached"`
}

// TokenUsage tracks LLM token consumption for a single scripting call.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Script is the result of asking an LLM to turn a natural-language
// instruction into an action payload.
type Script struct {
	// Payload is the generated EDN action vector.
	Payload string `json:"payload"`
	// Model is the LLM model that produced the payload.
	Model string `json:"model"`
	// Provider is the LLM provider used (e.g., "anthropic", "openai").
	Provider string `json:"provider"`
	// Usage tracks token consumption for this call.
	Usage TokenUsage `json:"usage,omitempty"`
}

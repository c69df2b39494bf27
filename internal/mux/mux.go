// Package mux provides an abstraction over terminal multiplexers (tmux,
// zellij).
//
// This package is pure transport: it lists topology, captures content, and
// delivers already-encoded payloads. All encoding decisions live in the
// engine and its codecs; nothing here interprets pane content or rewrites
// byte sequences.
package mux

import (
	"context"

	"github.com/timvw/pane-pilot/internal/model"
)

// CaptureOptions controls how pane content is captured.
type CaptureOptions struct {
	// ANSI preserves escape sequences in the capture (tmux -e).
	ANSI bool
	// History is the number of scrollback lines to include above the
	// visible area. Zero captures only the visible content.
	History int
}

// Multiplexer abstracts terminal multiplexer operations.
// Implementations exist for tmux and (future) zellij.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux", "zellij").
	Name() string

	// ListPanes returns all panes, optionally filtered by a session name
	// regex pattern. An empty filter returns all panes.
	ListPanes(ctx context.Context, filter string) ([]model.Pane, error)

	// ListSessions returns all sessions.
	ListSessions(ctx context.Context) ([]model.Session, error)

	// CapturePane captures the content of a pane. The target format
	// depends on the multiplexer (e.g., "session:window.pane" for tmux).
	CapturePane(ctx context.Context, target string, opts CaptureOptions) (string, error)

	// CursorPos returns the 0-based cursor position within a pane.
	CursorPos(ctx context.Context, target string) (x, y int, err error)

	// SendKeys delivers a key name or literal text on the plain channel.
	SendKeys(ctx context.Context, target, keys string) error

	// SendHex delivers space-separated hex bytes on the hex channel.
	SendHex(ctx context.Context, target, hex string) error

	// HasSession reports whether a session with the given name exists.
	HasSession(ctx context.Context, name string) bool

	// NewSession creates a detached session rooted at dir (empty for the
	// current directory).
	NewSession(ctx context.Context, name, dir string) error

	// NewWindow adds a window to an existing session.
	NewWindow(ctx context.Context, session, name, dir string) error

	// SplitWindow splits the target pane, creating a sibling pane.
	SplitWindow(ctx context.Context, target, dir string) error

	// KillSession destroys a session.
	KillSession(ctx context.Context, name string) error

	// AttachSession attaches the current terminal to a session. Blocks
	// until the client detaches.
	AttachSession(ctx context.Context, name string) error
}

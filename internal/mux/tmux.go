package mux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/timvw/pane-pilot/internal/model"
)

// Common errors.
var (
	ErrNoServer           = errors.New("no tmux server running")
	ErrSessionExists      = errors.New("session already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidSessionName = errors.New("invalid session name")
)

// validSessionNameRe rejects names tmux silently mangles (dots, colons)
// and anything shell-hostile.
var validSessionNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func validateSessionName(name string) error {
	if name == "" || !validSessionNameRe.MatchString(name) {
		return fmt.Errorf("%w %q: must match %s", ErrInvalidSessionName, name, validSessionNameRe.String())
	}
	return nil
}

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct{}

// NewTmux creates a new tmux multiplexer.
func NewTmux() *Tmux {
	return &Tmux{}
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// ListPanes returns all tmux panes, optionally filtered by session name pattern.
func (t *Tmux) ListPanes(ctx context.Context, filter string) ([]model.Pane, error) {
	// Format: session_name:window_index.pane_index\tpane_pid\tcurrent_command\twidth\theight
	format := "#{session_name}:#{window_index}.#{pane_index}\t#{pane_pid}\t#{pane_current_command}\t#{pane_width}\t#{pane_height}"
	out, err := t.run(ctx, "list-panes", "-a", "-F", format)
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}

	var re *regexp.Regexp
	if filter != "" {
		re, err = regexp.Compile(filter)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", filter, err)
		}
	}

	var panes []model.Pane
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 5)
		if len(parts) != 5 {
			continue
		}

		pane, err := parseTarget(parts[0])
		if err != nil {
			continue
		}
		pane.PID, _ = strconv.Atoi(parts[1])
		pane.Command = parts[2]
		pane.Width, _ = strconv.Atoi(parts[3])
		pane.Height, _ = strconv.Atoi(parts[4])

		if re != nil && !re.MatchString(pane.Session) {
			continue
		}

		panes = append(panes, pane)
	}

	return panes, nil
}

// ListSessions returns all tmux sessions.
func (t *Tmux) ListSessions(ctx context.Context) ([]model.Session, error) {
	format := "#{session_name}\t#{session_windows}\t#{session_attached}"
	out, err := t.run(ctx, "list-sessions", "-F", format)
	if err != nil {
		if strings.Contains(err.Error(), "no server running") {
			return nil, ErrNoServer
		}
		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}

	var sessions []model.Session
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		windows, _ := strconv.Atoi(parts[1])
		attached, _ := strconv.Atoi(parts[2])
		sessions = append(sessions, model.Session{
			Name:     parts[0],
			Windows:  windows,
			Attached: attached > 0,
		})
	}
	return sessions, nil
}

// CapturePane captures the content of a tmux pane.
// Uses -p (stdout) and -J (joined, unwraps lines); -e preserves escape
// sequences and -S extends into scrollback when requested.
func (t *Tmux) CapturePane(ctx context.Context, target string, opts CaptureOptions) (string, error) {
	args := []string{"capture-pane", "-t", target, "-p", "-J"}
	if opts.ANSI {
		args = append(args, "-e")
	}
	if opts.History > 0 {
		args = append(args, "-S", strconv.Itoa(-opts.History))
	}
	out, err := t.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("tmux capture-pane -t %s: %w", target, err)
	}
	return out, nil
}

// CursorPos returns the 0-based cursor position within a pane.
func (t *Tmux) CursorPos(ctx context.Context, target string) (int, int, error) {
	out, err := t.run(ctx, "display-message", "-t", target, "-p", "#{cursor_x}\t#{cursor_y}")
	if err != nil {
		return 0, 0, fmt.Errorf("tmux display-message -t %s: %w", target, err)
	}
	parts := strings.SplitN(strings.TrimSpace(out), "\t", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected cursor position output %q", out)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cursor x %q: %w", parts[0], err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cursor y %q: %w", parts[1], err)
	}
	return x, y, nil
}

// SendKeys delivers a key name or literal text on the plain channel.
// tmux interprets recognized key names (Enter, C-c, PageUp) and types
// everything else verbatim, which is exactly the plain sink contract.
func (t *Tmux) SendKeys(ctx context.Context, target, keys string) error {
	if _, err := t.run(ctx, "send-keys", "-t", target, "--", keys); err != nil {
		return fmt.Errorf("tmux send-keys -t %s: %w", target, err)
	}
	return nil
}

// SendHex delivers an encoded byte sequence on the hex channel. hex is in
// space-separated two-digit form; each byte becomes one argument to
// send-keys -H. Malformed hex is tmux's to reject.
func (t *Tmux) SendHex(ctx context.Context, target, hex string) error {
	args := []string{"send-keys", "-t", target, "-H"}
	args = append(args, strings.Fields(hex)...)
	if _, err := t.run(ctx, args...); err != nil {
		return fmt.Errorf("tmux send-keys -H -t %s: %w", target, err)
	}
	return nil
}

// HasSession reports whether a session with the given name exists.
func (t *Tmux) HasSession(ctx context.Context, name string) bool {
	// Exact match: "=" prevents tmux's prefix matching.
	_, err := t.run(ctx, "has-session", "-t", "="+name)
	return err == nil
}

// NewSession creates a detached session rooted at dir.
func (t *Tmux) NewSession(ctx context.Context, name, dir string) error {
	if err := validateSessionName(name); err != nil {
		return err
	}
	if t.HasSession(ctx, name) {
		return fmt.Errorf("%w: %q", ErrSessionExists, name)
	}
	args := []string{"new-session", "-d", "-s", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	if _, err := t.run(ctx, args...); err != nil {
		return fmt.Errorf("tmux new-session %q: %w", name, err)
	}
	return nil
}

// NewWindow adds a window to an existing session.
func (t *Tmux) NewWindow(ctx context.Context, session, name, dir string) error {
	args := []string{"new-window", "-t", session + ":"}
	if name != "" {
		args = append(args, "-n", name)
	}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	if _, err := t.run(ctx, args...); err != nil {
		return fmt.Errorf("tmux new-window in %q: %w", session, err)
	}
	return nil
}

// SplitWindow splits the target pane.
func (t *Tmux) SplitWindow(ctx context.Context, target, dir string) error {
	args := []string{"split-window", "-t", target}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	if _, err := t.run(ctx, args...); err != nil {
		return fmt.Errorf("tmux split-window -t %s: %w", target, err)
	}
	return nil
}

// KillSession destroys a session.
func (t *Tmux) KillSession(ctx context.Context, name string) error {
	if !t.HasSession(ctx, name) {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, name)
	}
	if _, err := t.run(ctx, "kill-session", "-t", "="+name); err != nil {
		return fmt.Errorf("tmux kill-session %q: %w", name, err)
	}
	return nil
}

// AttachSession attaches the current terminal to a session and blocks
// until the client detaches. Inside tmux it switches the client instead,
// since nesting attaches is refused by tmux.
func (t *Tmux) AttachSession(ctx context.Context, name string) error {
	if !t.HasSession(ctx, name) {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, name)
	}
	verb := "attach-session"
	if os.Getenv("TMUX") != "" {
		verb = "switch-client"
	}
	cmd := exec.CommandContext(ctx, "tmux", verb, "-t", "="+name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux %s %q: %w", verb, name, err)
	}
	return nil
}

// run executes a tmux command and returns its stdout.
func (t *Tmux) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}

// parseTarget parses a tmux target string "session:window.pane" into a Pane.
func parseTarget(target string) (model.Pane, error) {
	colonIdx := strings.LastIndex(target, ":")
	if colonIdx < 0 {
		return model.Pane{}, fmt.Errorf("invalid target %q: missing ':'", target)
	}

	session := target[:colonIdx]
	rest := target[colonIdx+1:]

	dotIdx := strings.LastIndex(rest, ".")
	if dotIdx < 0 {
		return model.Pane{}, fmt.Errorf("invalid target %q: missing '.'", target)
	}

	window, err := strconv.Atoi(rest[:dotIdx])
	if err != nil {
		return model.Pane{}, fmt.Errorf("invalid window index in %q: %w", target, err)
	}

	pane, err := strconv.Atoi(rest[dotIdx+1:])
	if err != nil {
		return model.Pane{}, fmt.Errorf("invalid pane index in %q: %w", target, err)
	}

	return model.Pane{
		Target:  target,
		Session: session,
		Window:  window,
		Pane:    pane,
	}, nil
}

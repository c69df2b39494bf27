// Package repl provides an interactive prompt bound to a single pane.
// Each line entered is executed as an action payload against the pane;
// the transcript shows what was sent and whether it was accepted.
package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timvw/pane-pilot/internal/engine"
	"github.com/timvw/pane-pilot/internal/mux"
	"github.com/timvw/pane-pilot/internal/render"
)

const maxTranscript = 200

type entry struct {
	payload string
	err     error
	at      time.Time
}

type execDoneMsg struct {
	payload string
	err     error
}

type captureMsg struct {
	content string
	err     error
}

// Model is the bubbletea model for the REPL.
type Model struct {
	ctx    context.Context
	eng    *engine.Engine
	m      mux.Multiplexer
	target string
	theme  Theme

	input      textinput.Model
	transcript []entry
	history    []string
	histPos    int
	running    bool
	preview    string
	width      int
	height     int
	quitting   bool
}

// New builds a REPL bound to target. The engine's sinks must already
// deliver to that target; m is only used for capture previews.
func New(ctx context.Context, eng *engine.Engine, m mux.Multiplexer, target string, theme Theme) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = `"text" :C-c [Click 10 5] ...`
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		ctx:     ctx,
		eng:     eng,
		m:       m,
		target:  target,
		theme:   theme,
		input:   ti,
		histPos: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			payload := strings.TrimSpace(m.input.Value())
			if payload == "" || m.running {
				return m, nil
			}
			m.input.SetValue("")
			m.history = append(m.history, payload)
			m.histPos = -1
			m.running = true
			m.preview = ""
			return m, m.execCmd(payload)
		case "up":
			if len(m.history) > 0 {
				if m.histPos == -1 {
					m.histPos = len(m.history) - 1
				} else if m.histPos > 0 {
					m.histPos--
				}
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			}
			return m, nil
		case "down":
			if m.histPos >= 0 {
				m.histPos++
				if m.histPos >= len(m.history) {
					m.histPos = -1
					m.input.SetValue("")
				} else {
					m.input.SetValue(m.history[m.histPos])
					m.input.CursorEnd()
				}
			}
			return m, nil
		case "ctrl+r":
			return m, m.captureCmd()
		}

	case execDoneMsg:
		m.running = false
		m.transcript = append(m.transcript, entry{payload: msg.payload, err: msg.err, at: time.Now()})
		if len(m.transcript) > maxTranscript {
			m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
		}
		return m, nil

	case captureMsg:
		if msg.err != nil {
			m.preview = ""
			m.transcript = append(m.transcript, entry{payload: "(capture)", err: msg.err, at: time.Now()})
		} else {
			m.preview = msg.content
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) execCmd(payload string) tea.Cmd {
	return func() tea.Msg {
		err := m.eng.RunPayload(m.ctx, payload)
		return execDoneMsg{payload: payload, err: err}
	}
}

func (m Model) captureCmd() tea.Cmd {
	return func() tea.Msg {
		content, err := m.m.CapturePane(m.ctx, m.target, mux.CaptureOptions{ANSI: true})
		return captureMsg{content: content, err: err}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.TextMuted)
	okStyle := lipgloss.NewStyle().Foreground(m.theme.Success)
	errStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
	infoStyle := lipgloss.NewStyle().Foreground(m.theme.Info)
	sepStyle := lipgloss.NewStyle().Foreground(m.theme.Border)

	var b strings.Builder
	b.WriteString(titleStyle.Render("pane-pilot"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  target %s", m.target)))
	b.WriteString("\n")
	b.WriteString(sepStyle.Render(strings.Repeat("─", max(m.width, 20))))
	b.WriteString("\n")

	if m.preview != "" {
		b.WriteString(infoStyle.Render("── pane ──"))
		b.WriteString("\n")
		b.WriteString(render.Render(render.Parse(m.preview)))
		b.WriteString("\n")
		b.WriteString(sepStyle.Render(strings.Repeat("─", max(m.width, 20))))
		b.WriteString("\n")
	}

	shown := m.transcript
	if limit := m.transcriptLimit(); len(shown) > limit {
		shown = shown[len(shown)-limit:]
	}
	for _, e := range shown {
		ts := mutedStyle.Render(e.at.Format("15:04:05"))
		if e.err != nil {
			b.WriteString(fmt.Sprintf("%s %s %s\n", ts, errStyle.Render("✗"), e.payload))
			b.WriteString(errStyle.Render("  " + e.err.Error()))
			b.WriteString("\n")
		} else {
			b.WriteString(fmt.Sprintf("%s %s %s\n", ts, okStyle.Render("✓"), e.payload))
		}
	}

	if m.running {
		b.WriteString(mutedStyle.Render("sending..."))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter send · ↑/↓ history · ctrl+r refresh pane · ctrl+c quit"))
	return b.String()
}

// transcriptLimit bounds the visible transcript to the space left after
// the header, input line and help line.
func (m Model) transcriptLimit() int {
	if m.height == 0 {
		return 20
	}
	limit := m.height - 5
	if limit < 1 {
		limit = 1
	}
	return limit
}

// Run starts the REPL and blocks until the user quits.
func Run(ctx context.Context, eng *engine.Engine, m mux.Multiplexer, target, themeName string) error {
	p := tea.NewProgram(New(ctx, eng, m, target, ThemeByName(themeName)))
	_, err := p.Run()
	return err
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-pilot/internal/model"
	"github.com/timvw/pane-pilot/internal/mux"
	telem "github.com/timvw/pane-pilot/internal/otel"
	"github.com/timvw/pane-pilot/internal/sessionfile"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage sessions from declarative session files",
	Long: `Manage multiplexer sessions described by session files.

A session file declares a session name, root directory, and a set of
windows and panes; each pane may carry setup actions that are executed
in it once the layout exists. Files are discovered in:

  ./.pane-pilot/sessions/
  ~/.config/pane-pilot/sessions/

plus any directories listed under session_dirs in the config file.`,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered session files and running sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := sessionfile.Discover(cfg.SessionDirs)
		if err != nil {
			return err
		}

		running := map[string]model.Session{}
		if m, err := getMultiplexer(); err == nil {
			if sessions, err := m.ListSessions(cmd.Context()); err == nil {
				for _, s := range sessions {
					running[s.Name] = s
				}
			}
		}

		for _, spec := range specs {
			state := "-"
			if s, ok := running[spec.Name]; ok {
				state = "running"
				if s.Attached {
					state = "attached"
				}
			}
			fmt.Printf("%-20s %-9s %s\n", spec.Name, state, spec.Path)
		}
		return nil
	},
}

var flagSessionAttach bool

var sessionStartCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a session from its session file",
	Long: `Create the session described by the named session file: windows and
panes first, then each pane's setup actions, in file order. Starting an
already-running session is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		spec, err := sessionfile.Find(args[0], cfg.SessionDirs)
		if err != nil {
			return err
		}

		m, err := getMultiplexer()
		if err != nil {
			return err
		}
		if m.HasSession(ctx, spec.Name) {
			return fmt.Errorf("session %q already exists", spec.Name)
		}

		tel := initTelemetry(ctx)
		if tel != nil {
			defer tel.Shutdown(ctx)
		}

		if err := buildSession(ctx, m, spec, tel); err != nil {
			return err
		}

		if flagSessionAttach {
			return m.AttachSession(ctx, spec.Name)
		}
		fmt.Printf("session %q started\n", spec.Name)
		return nil
	},
}

// buildSession creates the layout, then runs each pane's setup actions.
// Setup runs after the full layout exists so actions can rely on final
// pane geometry.
func buildSession(ctx context.Context, m mux.Multiplexer, spec sessionfile.Spec, tel *telem.Telemetry) error {
	type setup struct {
		target  string
		actions []any
	}
	var setups []setup

	// The session always gets created, even from a windowless spec: that
	// still yields the session with its single default window.
	rootDir := spec.Root
	if len(spec.Windows) > 0 && len(spec.Windows[0].Panes) > 0 {
		rootDir = spec.PaneDir(spec.Windows[0].Panes[0])
	}
	if err := m.NewSession(ctx, spec.Name, rootDir); err != nil {
		return err
	}

	for wi, w := range spec.Windows {
		if wi > 0 {
			dir := spec.Root
			if len(w.Panes) > 0 {
				dir = spec.PaneDir(w.Panes[0])
			}
			if err := m.NewWindow(ctx, spec.Name, w.Name, dir); err != nil {
				return err
			}
		}
		if len(w.Panes) == 0 {
			continue
		}
		winTarget := fmt.Sprintf("%s:%d", spec.Name, wi)
		if len(w.Panes[0].Setup) > 0 {
			setups = append(setups, setup{target: winTarget + ".0", actions: w.Panes[0].Setup})
		}
		for pi, p := range w.Panes[1:] {
			if err := m.SplitWindow(ctx, winTarget, spec.PaneDir(p)); err != nil {
				return err
			}
			if len(p.Setup) > 0 {
				setups = append(setups, setup{
					target:  fmt.Sprintf("%s.%d", winTarget, pi+1),
					actions: p.Setup,
				})
			}
		}
	}

	for _, s := range setups {
		eng := newEngine(ctx, m, s.target, tel)
		if err := eng.Run(ctx, s.actions); err != nil {
			return fmt.Errorf("setup for %s: %w", s.target, err)
		}
		// Let a pane's setup settle before the next pane starts.
		time.Sleep(time.Duration(cfg.DelayMs) * time.Millisecond)
	}
	return nil
}

var sessionKillCmd = &cobra.Command{
	Use:   "kill <name>",
	Short: "Kill a running session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer()
		if err != nil {
			return err
		}
		if err := m.KillSession(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "session %q killed\n", args[0])
		return nil
	},
}

var sessionAttachCmd = &cobra.Command{
	Use:   "attach <name>",
	Short: "Attach to a running session, starting it first if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		name := args[0]
		if !m.HasSession(ctx, name) {
			spec, err := sessionfile.Find(name, cfg.SessionDirs)
			if err != nil {
				return fmt.Errorf("session %q is not running and has no session file", name)
			}
			tel := initTelemetry(ctx)
			if tel != nil {
				defer tel.Shutdown(ctx)
			}
			if err := buildSession(ctx, m, spec, tel); err != nil {
				return err
			}
		}
		return m.AttachSession(ctx, name)
	},
}

func init() {
	sessionStartCmd.Flags().BoolVar(&flagSessionAttach, "attach", false, "attach after starting")
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionKillCmd)
	sessionCmd.AddCommand(sessionAttachCmd)
	rootCmd.AddCommand(sessionCmd)
}

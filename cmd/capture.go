package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-pilot/internal/mux"
	"github.com/timvw/pane-pilot/internal/render"
)

var (
	flagCaptureANSI    bool
	flagCapturePlain   bool
	flagCaptureCursor  bool
	flagCaptureHistory int
)

var captureCmd = &cobra.Command{
	Use:   "capture <target>",
	Short: "Capture the visible content of a pane",
	Long: `Capture the visible content of a terminal multiplexer pane and print it
to stdout.

By default escape sequences are preserved and re-rendered for the local
terminal. --plain strips all styling; --cursor overlays a marker at the
pane's cursor position; --history includes scrollback lines above the
visible area.

The target format depends on the multiplexer:
  tmux:   session:window.pane  (e.g., "mysession:0.0")
  zellij: (not yet supported)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		ctx := cmd.Context()

		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		// Cursor overlay needs honest column offsets, so it forces a
		// plain capture.
		ansi := flagCaptureANSI && !flagCapturePlain && !flagCaptureCursor

		content, err := m.CapturePane(ctx, target, mux.CaptureOptions{
			ANSI:    ansi,
			History: flagCaptureHistory,
		})
		if err != nil {
			return fmt.Errorf("failed to capture pane %q: %w", target, err)
		}

		if flagCaptureCursor {
			x, y, err := m.CursorPos(ctx, target)
			if err != nil {
				return fmt.Errorf("failed to read cursor position: %w", err)
			}
			content = render.InsertCursorMarker(content, x, y)
		}

		if ansi {
			content = render.Render(render.Parse(content))
		}

		fmt.Fprint(os.Stdout, content)
		return nil
	},
}

func init() {
	captureCmd.Flags().BoolVar(&flagCaptureANSI, "ansi", true, "preserve colors and attributes")
	captureCmd.Flags().BoolVar(&flagCapturePlain, "plain", false, "strip all styling")
	captureCmd.Flags().BoolVar(&flagCaptureCursor, "cursor", false, "overlay a marker at the cursor position")
	captureCmd.Flags().IntVar(&flagCaptureHistory, "history", 0, "scrollback lines to include")
	rootCmd.AddCommand(captureCmd)
}

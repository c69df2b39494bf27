package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-pilot/internal/engine"
)

var runCmd = &cobra.Command{
	Use:   "run <target> <file>",
	Short: "Stream actions from a script file to a pane",
	Long: `Read actions from a script file and execute them against a pane.

Actions are executed as they are parsed, so the file may be a pipe that
is still being written: each action runs to completion (including its
delays) before the next one is read. Use "-" to read from stdin.

Examples:
  pane-pilot run dev:0.0 demo.pilot
  tail -f actions.pilot | pane-pilot run dev:0.0 -`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, path := args[0], args[1]

		src := os.Stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			src = f
		}

		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		tel := initTelemetry(ctx)
		if tel != nil {
			defer tel.Shutdown(ctx)
		}

		eng := newEngine(ctx, m, target, tel)
		return eng.RunStream(ctx, engine.NewEDNReader(src))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

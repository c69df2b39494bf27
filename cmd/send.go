package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <target> [payload]",
	Short: "Execute an action payload against a pane",
	Long: `Execute an action payload against a terminal multiplexer pane.

The payload is a sequence of actions read from the argument, or from
stdin when the argument is omitted. Actions execute strictly in order;
a malformed action stops execution at that point.

Examples:
  pane-pilot send dev:0.0 '"ls -la" :Enter'
  pane-pilot send dev:0.0 ':C-c [Sleep 200] "q"'
  pane-pilot send dev:0.0 '[Click 10 5] [ScrollUp 3 :delay 50]'
  echo '"hello" :Enter' | pane-pilot send dev:0.0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		var payload string
		if len(args) == 2 {
			payload = args[1]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read payload from stdin: %w", err)
			}
			payload = string(data)
		}

		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		tel := initTelemetry(ctx)

		// The engine reports payload errors itself, with a quoting hint,
		// so a failure here exits without a second error line.
		err = newEngine(ctx, m, target, tel).Execute(ctx, payload)
		if tel != nil {
			tel.Shutdown(ctx)
		}
		if err != nil {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

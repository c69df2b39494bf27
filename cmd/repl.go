package cmd

import (
	"github.com/spf13/cobra"

	"github.com/timvw/pane-pilot/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl <target>",
	Short: "Interactive prompt bound to a pane",
	Long: `Open an interactive prompt bound to a single pane.

Each line you enter is executed as an action payload against the pane.
Ctrl+R refreshes a rendered snapshot of the pane above the transcript.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		ctx := cmd.Context()

		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		tel := initTelemetry(ctx)
		if tel != nil {
			defer tel.Shutdown(ctx)
		}

		eng := newEngine(ctx, m, target, tel)
		return repl.Run(ctx, eng, m, target, cfg.Theme)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

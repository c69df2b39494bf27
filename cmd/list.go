package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFilter   string
	flagListJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all pane targets",
	Long: `List all terminal multiplexer panes as targets.

Each line is a pane target that can be passed to other commands (send,
run, capture, repl). Optionally filter by session name using a regex
pattern, or use --json for full pane details.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		panes, err := m.ListPanes(cmd.Context(), flagFilter)
		if err != nil {
			return fmt.Errorf("failed to list panes: %w", err)
		}

		if flagListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(panes)
		}

		for _, p := range panes {
			fmt.Println(p.Target)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&flagFilter, "filter", "", "regex pattern to filter by session name")
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "output full pane details as JSON")
	rootCmd.AddCommand(listCmd)
}

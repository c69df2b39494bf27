package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-pilot/internal/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show recognized key names and modifier prefixes",
	Long: `Show the key names and modifier prefixes the action language accepts.

A key spec is a key name with optional chained modifier prefixes, written
as a keyword or bare word: :Enter, :C-c, :C-M-S-a, :Super-t. Single
characters are keys too: :a, :%. Aliases on the left resolve to the
canonical name on the right.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Modifier prefixes:")
		fmt.Println("  C-       Ctrl")
		fmt.Println("  M-       Alt/Meta")
		fmt.Println("  S-       Shift")
		fmt.Println("  Super-   Super (delivered via the kitty keyboard protocol)")
		fmt.Println("  Hyper-   Hyper (delivered via the kitty keyboard protocol)")
		fmt.Println()

		aliases := keys.Aliases()
		names := make([]string, 0, len(aliases))
		for alias := range aliases {
			names = append(names, alias)
		}
		sort.Strings(names)

		fmt.Println("Key names:")
		for _, alias := range names {
			canon := aliases[alias]
			if alias == canon {
				fmt.Printf("  %s\n", alias)
			} else {
				fmt.Printf("  %-10s -> %s\n", alias, canon)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

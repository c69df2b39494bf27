package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-pilot/internal/action"
	"github.com/timvw/pane-pilot/internal/engine"
	"github.com/timvw/pane-pilot/internal/mux"
)

var (
	flagScriptSend    bool
	flagScriptContext int
)

var scriptCmd = &cobra.Command{
	Use:   "script <target> <instruction>",
	Short: "Generate an action payload from a natural-language instruction",
	Long: `Ask an LLM to write an action payload for a pane.

The pane's current content is captured and sent to the LLM together with
the instruction; the model answers with a payload in the action language.
The payload is validated (every action parsed) and printed to stdout.
With --send it is also executed against the pane.

Examples:
  pane-pilot script dev:0.0 "quit vim without saving"
  pane-pilot script --send dev:0.0 "accept the confirmation prompt"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, instruction := args[0], args[1]
		ctx := cmd.Context()

		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		s, err := getScripter()
		if err != nil {
			return err
		}

		tel := initTelemetry(ctx)
		if tel != nil {
			defer tel.Shutdown(ctx)
		}

		content, err := m.CapturePane(ctx, target, mux.CaptureOptions{History: flagScriptContext})
		if err != nil {
			return fmt.Errorf("failed to capture pane %q: %w", target, err)
		}

		script, err := s.Script(ctx, instruction, content)
		if err != nil {
			return fmt.Errorf("scripting failed: %w", err)
		}
		if tel != nil {
			tel.Metrics.RecordTokens(ctx, script.Provider, script.Model,
				script.Usage.InputTokens, script.Usage.OutputTokens)
		}

		if err := validatePayload(script.Payload); err != nil {
			return fmt.Errorf("model produced an invalid payload: %w\n%s", err, script.Payload)
		}

		fmt.Println(script.Payload)
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "tokens: %d in, %d out (%s/%s)\n",
				script.Usage.InputTokens, script.Usage.OutputTokens,
				script.Provider, script.Model)
		}

		if flagScriptSend {
			return newEngine(ctx, m, target, tel).Execute(ctx, script.Payload)
		}
		return nil
	},
}

// validatePayload parses and classifies every action without executing
// anything.
func validatePayload(payload string) error {
	r := engine.NewEDNReader(strings.NewReader(payload))
	for {
		v, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := action.Classify(v); err != nil {
			return err
		}
	}
}

func init() {
	scriptCmd.Flags().BoolVar(&flagScriptSend, "send", false, "execute the generated payload against the pane")
	scriptCmd.Flags().IntVar(&flagScriptContext, "context", 0, "scrollback lines to include in the pane snapshot")
	rootCmd.AddCommand(scriptCmd)
}

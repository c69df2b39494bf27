package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-pilot/internal/config"
	"github.com/timvw/pane-pilot/internal/engine"
	"github.com/timvw/pane-pilot/internal/mux"
	telem "github.com/timvw/pane-pilot/internal/otel"
	"github.com/timvw/pane-pilot/internal/scripter"
)

var (
	// Global flags. Empty / negative values mean "use config".
	flagMux       string
	flagDelayMs   int
	flagProvider  string
	flagModel     string
	flagBaseURL   string
	flagAPIKey    string
	flagMaxTokens int64
	flagVerbose   bool
)

// cfg is loaded once before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pane-pilot",
	Short: "Structured input injection for terminal multiplexer panes",
	Long: `pane-pilot delivers keystrokes, mouse events, and raw escape sequences
to terminal multiplexer panes, driven by a small structured action language.

A payload is a sequence of actions:

  "text"              literal text (quoted string)
  :C-c :Enter :M-S-x  key specs (keywords or bare words)
  [Sleep 500]         pause in milliseconds
  ["ls" 3]            repeat text
  [:Up 3 :delay 50]   repeat a key with an explicit gap
  [Click 10 5]        mouse click at column 10, row 5
  [ScrollUp 10 5 2]   scroll wheel at column 10, row 5, twice
  [Raw "\e[H"]        raw escape sequence
  [RawHex "1b 5b 48"] raw bytes as hex

Mouse events and keys that need the kitty keyboard protocol are encoded
to bytes and delivered on the multiplexer's hex channel; everything else
goes through the plain key channel.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		applyFlags(cfg)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = telem.Version
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", "", "terminal multiplexer: tmux, zellij (default: auto-detect)")
	rootCmd.PersistentFlags().IntVar(&flagDelayMs, "delay", -1, "inter-action delay in milliseconds (default: 30)")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "LLM provider: anthropic, openai")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "LLM model name")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "override LLM API base URL")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "override LLM API key")
	rootCmd.PersistentFlags().Int64Var(&flagMaxTokens, "max-tokens", 0, "max completion tokens (default: 4096)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose output")
}

// applyFlags overlays explicitly-set command-line flags onto the loaded
// config. Flags sit above env and file in the precedence order.
func applyFlags(c *config.Config) {
	if flagMux != "" {
		c.Mux = flagMux
	}
	if flagDelayMs >= 0 {
		c.DelayMs = flagDelayMs
	}
	if flagProvider != "" {
		c.Provider = flagProvider
	}
	if flagModel != "" {
		c.Model = flagModel
	}
	if flagBaseURL != "" {
		c.BaseURL = flagBaseURL
	}
	if flagAPIKey != "" {
		c.APIKey = flagAPIKey
	}
	if flagMaxTokens > 0 {
		c.MaxTokens = flagMaxTokens
	}
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer() (mux.Multiplexer, error) {
	if cfg.Mux != "" {
		return mux.FromName(cfg.Mux)
	}
	return mux.Detect()
}

// initTelemetry initializes OTEL from the config. It never fails the
// command: with no endpoint configured the providers are no-ops.
func initTelemetry(ctx context.Context) *telem.Telemetry {
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
		return nil
	}
	return tel
}

// newEngine builds an engine whose sinks deliver to target through m.
// Sink failures are reported on stderr; the engine itself keeps going.
func newEngine(ctx context.Context, m mux.Multiplexer, target string, tel *telem.Telemetry) *engine.Engine {
	var metrics *telem.Metrics
	if tel != nil {
		metrics = tel.Metrics
	}
	e := &engine.Engine{
		Delay:   time.Duration(cfg.DelayMs) * time.Millisecond,
		Metrics: metrics,
	}
	e.SendText = func(s string) {
		if err := m.SendKeys(ctx, target, s); err != nil {
			fmt.Fprintf(os.Stderr, "warning: send-keys to %s failed: %v\n", target, err)
			metrics.RecordSinkError(ctx, "text")
		}
	}
	e.SendHex = func(s string) {
		if err := m.SendHex(ctx, target, s); err != nil {
			fmt.Fprintf(os.Stderr, "warning: hex send to %s failed: %v\n", target, err)
			metrics.RecordSinkError(ctx, "hex")
		}
	}
	return e
}

// getScripter returns the configured LLM scripter.
func getScripter() (scripter.Scripter, error) {
	apiKey := cfg.APIKey
	switch cfg.Provider {
	case "anthropic":
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no API key found. Set PANE_PILOT_API_KEY or ANTHROPIC_API_KEY")
		}
		return scripter.NewAnthropicScripter(scripter.AnthropicConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    apiKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	case "openai":
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no API key found. Set PANE_PILOT_API_KEY or OPENAI_API_KEY")
		}
		// The config default model is anthropic's; it does not carry over.
		model := cfg.Model
		if model == "" || model == config.Defaults().Model {
			model = "gpt-4o-mini"
		}
		return scripter.NewOpenAIScripter(scripter.OpenAIConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    apiKey,
			Model:     model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (supported: anthropic, openai)", cfg.Provider)
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-pilot/internal/relay"
)

var (
	flagDaemonSocket string
	flagDaemonTTL    time.Duration
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Accept action payloads over a local socket",
	Long: `Listen on a unix datagram socket for action requests and execute them.

Each datagram is one request: {:target "dev:0.0" :actions [...] :delay-ms 10}.
Requests are executed strictly one at a time, in arrival order, so
concurrent senders cannot interleave their actions. Malformed or failed
requests are reported on stderr; the daemon keeps running.

The default socket path is $XDG_RUNTIME_DIR/pane-pilot/inject.sock.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		tel := initTelemetry(ctx)
		if tel != nil {
			defer tel.Shutdown(context.Background())
		}

		socket := flagDaemonSocket
		if socket == "" {
			socket = relay.DefaultSocketPath()
		}

		store := relay.NewStore(flagDaemonTTL)
		c := relay.NewCollector(store, socket)
		c.Execute = func(ctx context.Context, req relay.Request) error {
			eng := newEngine(ctx, m, req.Target, tel)
			if req.DelayMs >= 0 {
				eng.Delay = time.Duration(req.DelayMs) * time.Millisecond
			}
			return eng.Run(ctx, req.Actions)
		}

		if flagVerbose {
			go reportDeliveries(ctx, store)
		}

		if err := c.Start(ctx); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "listening on %s\n", socket)
		<-ctx.Done()
		return nil
	},
}

// reportDeliveries prints a periodic summary of recent deliveries.
func reportDeliveries(ctx context.Context, store *relay.Store) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			recent := store.Snapshot(time.Now())
			failed := 0
			for _, d := range recent {
				if d.Err != "" {
					failed++
				}
			}
			fmt.Fprintf(os.Stderr, "deliveries: %d in window, %d failed\n", len(recent), failed)
		}
	}
}

func init() {
	daemonCmd.Flags().StringVar(&flagDaemonSocket, "socket", "", "socket path (default: $XDG_RUNTIME_DIR/pane-pilot/inject.sock)")
	daemonCmd.Flags().DurationVar(&flagDaemonTTL, "ttl", 5*time.Minute, "how long delivery records are kept")
	rootCmd.AddCommand(daemonCmd)
}

package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"olympos.io/encoding/edn"
)

const defaultMaxPayloadBytes = 64 * 1024

// Collector listens on a unix datagram socket and executes injection
// requests. Requests execute strictly one at a time, in arrival order —
// the read loop does not pull the next datagram until the current
// request has fully finished, preserving the engine's sequencing
// guarantee across senders.
type Collector struct {
	store *Store
	path  string

	// Execute runs one validated request. Required.
	Execute func(ctx context.Context, req Request) error

	MaxPayloadBytes int

	mu     sync.Mutex
	conn   *net.UnixConn
	closed bool
}

// NewCollector creates a collector writing outcomes to store.
func NewCollector(store *Store, socketPath string) *Collector {
	return &Collector{
		store:           store,
		path:            socketPath,
		MaxPayloadBytes: defaultMaxPayloadBytes,
	}
}

// SocketPath returns the socket path the collector listens on.
func (c *Collector) SocketPath() string {
	return c.path
}

// Start binds the socket and begins executing requests until ctx is done.
func (c *Collector) Start(ctx context.Context) error {
	if c.store == nil {
		return fmt.Errorf("store is required")
	}
	if c.Execute == nil {
		return fmt.Errorf("execute callback is required")
	}
	if c.path == "" {
		return fmt.Errorf("socket path is required")
	}
	if c.MaxPayloadBytes <= 0 {
		c.MaxPayloadBytes = defaultMaxPayloadBytes
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Chmod(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("chmod socket dir: %w", err)
	}
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	addr, err := net.ResolveUnixAddr("unixgram", c.path)
	if err != nil {
		return fmt.Errorf("resolve unix addr: %w", err)
	}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return fmt.Errorf("listen unixgram: %w", err)
	}
	if err := os.Chmod(c.path, 0o600); err != nil {
		_ = conn.Close()
		return fmt.Errorf("chmod socket: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.closed = false
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.close()
	}()

	go c.readLoop(ctx)

	return nil
}

func (c *Collector) readLoop(ctx context.Context) {
	buf := make([]byte, c.MaxPayloadBytes)
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		n, _, err := conn.ReadFromUnix(buf)
		if err != nil {
			if c.isClosed() {
				return
			}
			continue
		}

		if n <= 0 || n >= c.MaxPayloadBytes {
			continue
		}

		var req Request
		req.DelayMs = -1
		if err := edn.Unmarshal(buf[:n], &req); err != nil {
			fmt.Fprintf(os.Stderr, "warning: relay: bad datagram: %v\n", err)
			continue
		}
		if err := req.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: relay: %v\n", err)
			continue
		}

		d := Delivery{Target: req.Target, Actions: len(req.Actions), TS: time.Now().UTC()}
		if err := c.Execute(ctx, req); err != nil {
			d.Err = err.Error()
			fmt.Fprintf(os.Stderr, "warning: relay: %s: %v\n", req.Target, err)
		}
		c.store.Record(d)
	}
}

func (c *Collector) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Collector) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

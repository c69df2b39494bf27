package relay

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{
			name: "valid",
			req:  Request{Target: "dev:0.0", Actions: []any{"hi"}},
		},
		{
			name:    "empty target",
			req:     Request{Actions: []any{"hi"}},
			wantErr: true,
		},
		{
			name:    "target missing pane",
			req:     Request{Target: "dev:0", Actions: []any{"hi"}},
			wantErr: true,
		},
		{
			name:    "target missing window",
			req:     Request{Target: "dev", Actions: []any{"hi"}},
			wantErr: true,
		},
		{
			name:    "no actions",
			req:     Request{Target: "dev:0.0"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		err := tt.req.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: got err=%v, wantErr=%v", tt.name, err, tt.wantErr)
		}
	}
}

func TestStore_RecordAndSnapshot(t *testing.T) {
	s := NewStore(5 * time.Minute)
	s.Record(Delivery{Target: "b:0.0", TS: time.Now()})
	s.Record(Delivery{Target: "a:0.0", TS: time.Now()})

	got := s.Snapshot(time.Now())
	if len(got) != 2 {
		t.Fatalf("got %d deliveries, want 2", len(got))
	}
	if got[0].Target != "a:0.0" || got[1].Target != "b:0.0" {
		t.Errorf("not sorted by target: %+v", got)
	}
}

func TestStore_LatestPerTargetWins(t *testing.T) {
	s := NewStore(0)
	s.Record(Delivery{Target: "a:0.0", Actions: 1, TS: time.Now()})
	s.Record(Delivery{Target: "a:0.0", Actions: 7, TS: time.Now()})

	got := s.Snapshot(time.Now())
	if len(got) != 1 {
		t.Fatalf("got %d deliveries, want 1", len(got))
	}
	if got[0].Actions != 7 {
		t.Errorf("Actions: got %d, want the latest record", got[0].Actions)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	s := NewStore(time.Minute)
	s.Record(Delivery{Target: "a:0.0", TS: time.Now().Add(-2 * time.Minute)})

	if got := s.Snapshot(time.Now()); len(got) != 0 {
		t.Errorf("expected expired delivery to be dropped, got %+v", got)
	}
}

func TestCollector_ExecutesValidRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore(5 * time.Minute)
	c := NewCollector(store, shortSocketPath(t))

	var mu sync.Mutex
	var got []Request
	c.Execute = func(ctx context.Context, req Request) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, req)
		return nil
	}

	if err := c.Start(ctx); err != nil {
		t.Fatalf("start collector: %v", err)
	}

	payload := []byte(`{:target "dev:0.0" :actions ["ls" :Enter]}`)
	if err := sendDatagram(c.SocketPath(), payload); err != nil {
		t.Fatalf("send datagram: %v", err)
	}

	waitFor(t, 1*time.Second, func() bool {
		return len(store.Snapshot(time.Now())) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("executed %d requests, want 1", len(got))
	}
	if got[0].Target != "dev:0.0" {
		t.Errorf("target: got %q, want %q", got[0].Target, "dev:0.0")
	}
	if len(got[0].Actions) != 2 {
		t.Errorf("actions: got %d, want 2", len(got[0].Actions))
	}
	if got[0].DelayMs != -1 {
		t.Errorf("DelayMs: got %d, want -1 when the request leaves it unset", got[0].DelayMs)
	}
}

func TestCollector_IgnoresMalformedDatagram(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore(5 * time.Minute)
	c := NewCollector(store, shortSocketPath(t))
	executed := false
	c.Execute = func(ctx context.Context, req Request) error {
		executed = true
		return nil
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start collector: %v", err)
	}

	if err := sendDatagram(c.SocketPath(), []byte(`{:target`)); err != nil {
		t.Fatalf("send datagram: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if executed {
		t.Error("malformed datagram must not execute")
	}
	if got := len(store.Snapshot(time.Now())); got != 0 {
		t.Errorf("expected 0 deliveries, got %d", got)
	}
}

func TestCollector_RecordsExecutionFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore(5 * time.Minute)
	c := NewCollector(store, shortSocketPath(t))
	c.Execute = func(ctx context.Context, req Request) error {
		return fmt.Errorf("boom")
	}
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start collector: %v", err)
	}

	payload := []byte(`{:target "dev:0.0" :actions ["x"]}`)
	if err := sendDatagram(c.SocketPath(), payload); err != nil {
		t.Fatalf("send datagram: %v", err)
	}

	waitFor(t, 1*time.Second, func() bool {
		return len(store.Snapshot(time.Now())) == 1
	})
	d := store.Snapshot(time.Now())[0]
	if d.Err != "boom" {
		t.Errorf("Err: got %q, want %q", d.Err, "boom")
	}
}

func TestCollector_RequiresExecuteCallback(t *testing.T) {
	c := NewCollector(NewStore(0), shortSocketPath(t))
	if err := c.Start(context.Background()); err == nil {
		t.Fatal("expected error when Execute is unset")
	}
}

func sendDatagram(socketPath string, payload []byte) error {
	addr, err := net.ResolveUnixAddr("unixgram", socketPath)
	if err != nil {
		return err
	}
	conn, err := net.DialUnix("unixgram", nil, addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Write(payload)
	return err
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

func shortSocketPath(t *testing.T) string {
	t.Helper()
	base := filepath.Join(os.TempDir(), "pp-relay")
	if err := os.MkdirAll(base, 0o700); err != nil {
		t.Fatalf("mkdir temp base: %v", err)
	}
	p := filepath.Join(base, fmt.Sprintf("%d-%d.sock", time.Now().UnixNano(), os.Getpid()))
	t.Cleanup(func() {
		_ = os.Remove(p)
	})
	return p
}

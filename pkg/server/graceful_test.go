package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dd0wney/cluso-netanalyzer/pkg/metrics"
)

func waitForAddr(t *testing.T, gs *GracefulServer) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if addr := gs.Addr(); addr != nil {
			return addr.String()
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server did not start listening")
	return ""
}

// TestMetricsServer_ServesAndStopsOnCancel tests the metrics endpoint and
// context driven shutdown
func TestMetricsServer_ServesAndStopsOnCancel(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.RecordSource()

	gs := NewMetricsServer("127.0.0.1:0", reg.Handler(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Serve(ctx) }()

	addr := waitForAddr(t, gs)
	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "netanalyzer_sources_processed_total 1") {
		t.Errorf("metrics body missing sources counter:\n%s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if !gs.IsShuttingDown() {
		t.Error("server should report shutting down")
	}
}

// TestGracefulServer_ShutdownIdempotent tests repeated Shutdown calls
func TestGracefulServer_ShutdownIdempotent(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gs := NewGracefulServer("127.0.0.1:0", handler, nil)

	done := make(chan error, 1)
	go func() { done <- gs.Serve(context.Background()) }()
	waitForAddr(t, gs)

	if err := gs.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if err := gs.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Serve() error = %v", err)
	}
}

// TestGracefulServer_ListenError tests that a bad address fails fast
func TestGracefulServer_ListenError(t *testing.T) {
	gs := NewGracefulServer("256.0.0.1:bad", http.NotFoundHandler(), nil)
	if err := gs.Serve(context.Background()); err == nil {
		t.Error("Serve() expected error for invalid address")
	}
}

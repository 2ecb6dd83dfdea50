package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

// DefaultShutdownTimeout bounds how long in-flight scrapes may drain.
const DefaultShutdownTimeout = 5 * time.Second

// GracefulServer wraps an HTTP server with graceful shutdown capabilities
type GracefulServer struct {
	server       *http.Server
	logger       logging.Logger
	timeout      time.Duration
	shutdownCh   chan struct{}
	shutdownOnce sync.Once

	mu   sync.Mutex
	addr net.Addr
}

// NewGracefulServer creates a new graceful HTTP server
func NewGracefulServer(addr string, handler http.Handler, logger logging.Logger) *GracefulServer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GracefulServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		logger:     logger.With(logging.Component("http")),
		timeout:    DefaultShutdownTimeout,
		shutdownCh: make(chan struct{}),
	}
}

// NewMetricsServer serves handler on /metrics.
func NewMetricsServer(addr string, handler http.Handler, logger logging.Logger) *GracefulServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	return NewGracefulServer(addr, mux, logger)
}

// Serve listens and serves until ctx is cancelled or Shutdown is called.
// It returns nil after a graceful shutdown.
func (gs *GracefulServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", gs.server.Addr)
	if err != nil {
		return err
	}
	gs.mu.Lock()
	gs.addr = ln.Addr()
	gs.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		if err := gs.Shutdown(); err != nil {
			gs.logger.Warn("shutdown failed", logging.Error(err))
		}
	})
	defer stop()

	gs.logger.Info("http server listening", logging.String("addr", ln.Addr().String()))
	if err := gs.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound address once Serve is listening, nil before.
func (gs *GracefulServer) Addr() net.Addr {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.addr
}

// Shutdown initiates a graceful shutdown. Later calls are no-ops.
func (gs *GracefulServer) Shutdown() error {
	var err error
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), gs.timeout)
		defer cancel()

		if err = gs.server.Shutdown(ctx); err != nil {
			gs.logger.Error("http server shutdown failed", logging.Error(err))
			return
		}
		gs.logger.Debug("http server shutdown complete")
	})
	return err
}

// IsShuttingDown returns true if shutdown has been initiated
func (gs *GracefulServer) IsShuttingDown() bool {
	select {
	case <-gs.shutdownCh:
		return true
	default:
		return false
	}
}

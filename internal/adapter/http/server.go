// Package http is the pad's status surface for operators and scripts:
//
//	GET /healthz   process is up
//	GET /readyz    the event loop has applied its first event
//	GET /metrics   Prometheus fetch, loop and publish metrics
//	GET /state     the latest state snapshot as JSON
//
// Nothing here changes state; edits only arrive through the console.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/flypad/internal/state"
)

// SnapshotSource is satisfied by state.Loop.
type SnapshotSource interface {
	Snapshot() state.State
}

// Server is the status listener.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer binds the status routes to addr. ready gates /readyz and
// snapshots backs /state.
func NewServer(addr string, ready sharedobs.ReadinessChecker, snapshots SnapshotSource, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           routes(ready, snapshots),
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

func routes(ready sharedobs.ReadinessChecker, snapshots SnapshotSource) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /state", func(w http.ResponseWriter, _ *http.Request) {
		// Snapshots go stale with the next event.
		w.Header().Set("Cache-Control", "no-store")
		sharedobs.WriteJSON(w, http.StatusOK, snapshots.Snapshot())
	})
	return mux
}

// Start serves until Shutdown, then returns http.ErrServerClosed.
func (s *Server) Start() error {
	s.logger.Info("status server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP lets tests drive the routes without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

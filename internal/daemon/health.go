package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"subburn/internal/logging"
)

// livenessBody is the static confirmation string unauthenticated health
// checks expect on "/".
const livenessBody = "Telegram Hebrew Subtitle Bot — Running ✅"

// healthServer answers unauthenticated liveness probes.
type healthServer struct {
	server *http.Server
	logger *slog.Logger
	addr   string
}

func newHealthServer(bind string, logger *slog.Logger) *healthServer {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(livenessBody))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &healthServer{
		server: &http.Server{
			Addr:         bind,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// start listens and serves in the background. Listen errors are returned
// synchronously so a bad bind address fails startup.
func (h *healthServer) start() error {
	listener, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return err
	}
	h.addr = listener.Addr().String()
	go func() {
		if err := h.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server stopped", logging.Error(err))
		}
	}()
	return nil
}

func (h *healthServer) stop(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Warn("health server shutdown", logging.Error(err))
	}
}

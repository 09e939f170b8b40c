package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/season-tracker/internal/config"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
)

// PprofServer serves net/http/pprof on its own listener, away from the
// public API router.
type PprofServer struct {
	srv    *http.Server
	addr   string
	logger *logging.Logger
}

func newPprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// StartPprofServer binds synchronously so a taken port fails startup. It
// returns nil, nil when profiling endpoints are off.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (*PprofServer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	listener, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, fmt.Errorf("listen pprof on %s: %w", cfg.PprofAddr, err)
	}

	server := &PprofServer{
		srv: &http.Server{
			Handler:           newPprofMux(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr:   listener.Addr().String(),
		logger: logger,
	}
	go func() {
		logger.Info("pprof server started", "addr", server.addr)
		if err := server.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	return server, nil
}

func (s *PprofServer) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Stop is safe on a nil server.
func (s *PprofServer) Stop(timeout time.Duration) error {
	if s == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown pprof server: %w", err)
	}
	s.logger.Info("pprof server stopped")
	return nil
}

// Package web serves the launch dashboard page, its JSON API and rendered chart images.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iafilius/LaunchDashboard/src/config"
	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/logging"
)

const shutdownTimeout = 10 * time.Second

// Server owns the HTTP listener for the dashboard.
type Server struct {
	cfg        config.Config
	httpServer *http.Server
}

func NewServer(cfg config.Config, ds *dataset.Dataset) *Server {
	h := NewHandler(ds, cfg, NewMetrics())
	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Infof("http server started on http://%s", ln.Addr())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logging.Infof("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Warnf("http server shutdown error: %v", err)
			return s.httpServer.Close()
		}
		return nil
	})
	return g.Wait()
}

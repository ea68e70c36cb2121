package httpt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"artnotifier/internal/config"

	"go.uber.org/zap"
)

type Server struct {
	srv *http.Server
	cfg *config.HTTP
	log *zap.Logger
}

func NewHTTPServer(h *Handler, cfg *config.HTTP, log *zap.Logger) (*Server, error) {
	if h == nil || cfg == nil {
		return nil, errors.New("httpt.NewHTTPServer: nil handler or config")
	}

	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           h.Engine(),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		cfg: cfg,
		log: log,
	}, nil
}

// Start serves until ctx is cancelled, then shuts down gracefully within
// the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("http server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("httpt.Server.Start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info("http server shutting down")
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpt.Server.Start: shutdown: %w", err)
	}
	return nil
}

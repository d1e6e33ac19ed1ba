package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	http   *http.Server
	logger logrus.FieldLogger
}

func New(addr string, router Router) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           router.SetUpRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: router.Logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	serverDone := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.http.Addr).Info("starting http server")
		serverDone <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serverDone:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

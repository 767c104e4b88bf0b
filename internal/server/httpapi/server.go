package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/framezhq/framez/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server runs the JSON API over HTTP until its context is cancelled.
type Server struct {
	address string
	router  *Router
	logger  logging.Logger
}

func NewServer(address string, router *Router, logger logging.Logger) *Server {
	return &Server{
		address: address,
		router:  router,
		logger:  logger.With("module", "http_server"),
	}
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

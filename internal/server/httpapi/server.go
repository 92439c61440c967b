package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/devesh1231/user-account-service/internal/logging"
	"github.com/devesh1231/user-account-service/internal/server/config"
)

// Server runs the HTTP endpoint of the account service.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

// NewServer builds the router and binds it to the configured address.
func NewServer(cfg *config.Config, logger logging.Logger, accounts AccountManager) *Server {
	handlers := NewHandlers(accounts, logger, cfg)
	router := NewRouter(handlers, logger)

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.EndpointAddr,
			Handler: router,
		},
		logger: logger,
	}
}

// Run serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info(ctx, "starting http server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "stopping http server")
	return s.httpServer.Shutdown(ctx)
}

package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/agendalabs/meetingd/internal/config"
	"github.com/agendalabs/meetingd/pkg/logger"
)

// Server wraps the HTTP listener.
type Server struct {
	srv *http.Server
	log *logger.Logger
}

// NewServer builds the listener from the server configuration.
func NewServer(cfg config.ServerConfig, h http.Handler, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewDefault("httpserver")
	}
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      h,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		},
		log: log,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.srv.Addr }

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

package api

import (
	"net/http"

	"github.com/seasalt-intel/webintel/internal/config"
)

// NewHTTPServer builds the HTTP server around the router. The write
// timeout is generous because a full sync can take minutes.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

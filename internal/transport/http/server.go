// Package httptransport builds the HTTP server serving the tracker API.
package httptransport

import (
	"net/http"

	"github.com/elorback/boilerplate-project-exercisetracker/internal/config"
)

// NewServer creates an *http.Server for the given handler with the listen
// address and timeouts taken from the service configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddress,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

package infra

import (
	"context"
	"net/http"
	"time"
)

const maxRequestHeaderBytes = 1 << 20

// HTTPServer wraps http.Server with startup and graceful-shutdown helpers
// for the wallet API.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer builds the API server with the configured timeouts. The
// header cap is generous; request bodies are small JSON payloads and the
// handlers bound them per-route.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		MaxHeaderBytes:    maxRequestHeaderBytes,
	}

	return &HTTPServer{server: srv}
}

// Addr reports the listen address.
func (s *HTTPServer) Addr() string {
	if s.server == nil {
		return ""
	}
	return s.server.Addr
}

// Start runs the server in the current goroutine until Shutdown or failure.
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Package rest exposes the webhook ingestion surface over HTTP: one POST
// endpoint receiving provider deliveries and a health endpoint for probes.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gabapcia/solrelay/internal/pkg/logger"
	"github.com/gabapcia/solrelay/internal/relay"
)

// Server is the HTTP server fronting the relay service.
type Server struct {
	addr   string
	relay  relay.Service
	secret string
	server *http.Server
}

type config struct {
	secret string
}

// Option configures the server.
type Option func(*config)

// WithSharedSecret enables webhook authentication: deliveries must carry
// the given value in their Authorization header. An empty secret disables
// the check.
func WithSharedSecret(secret string) Option {
	return func(c *config) {
		c.secret = secret
	}
}

// New creates the HTTP server from its dependencies.
func New(addr string, relaySvc relay.Service, opts ...Option) *Server {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Server{
		addr:   addr,
		relay:  relaySvc,
		secret: cfg.secret,
	}
}

// routes assembles the request mux. Split out so tests can exercise the
// handler tree without binding a listener.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /v1/webhook", handleWebhook(s.relay, s.secret))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

// Start runs the server until the context is canceled, then drains in-flight
// requests before returning.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info(shutdownCtx, "http server shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

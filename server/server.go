// Package server exposes diagram generation over HTTP and serves the
// browser client.
package server

import (
	"context"
	"errors"
	"io/fs"
	golog "log"
	"net"
	"net/http"
	"time"

	"github.com/deepnoodle-ai/archsketch"
	"github.com/deepnoodle-ai/archsketch/log"
)

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
var ShutdownTimeout = 10 * time.Second

// Server routes the API endpoint and the static assets.
type Server struct {
	generator     archsketch.Generator
	assets        fs.FS
	entryPage     string
	validateEdges bool
	logger        log.Logger
	errorLog      *golog.Logger
}

// New returns a Server. A nil generator is allowed: the generation endpoint
// then answers every request with the "AI client not initialized" error.
func New(generator archsketch.Generator, opts ...Option) *Server {
	s := &Server{
		generator: generator,
		assets:    DefaultAssets(),
		entryPage: DefaultEntryPage,
		logger:    log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate_diagram", s.handleGenerateDiagram)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /{filename}", s.handleAsset)
	return s.recoverPanics(s.logRequests(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := s.httpServer(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) httpServer(ctx context.Context) *http.Server {
	return &http.Server{
		Handler:  s.Handler(),
		ErrorLog: s.errorLog,
		// In-flight requests finish during Shutdown even though ctx is done.
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}
}

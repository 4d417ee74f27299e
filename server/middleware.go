package server

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/deepnoodle-ai/archsketch/log"
	"github.com/felixge/httpsnoop"
)

// logRequests attaches a request-scoped logger to the context and writes
// one debug line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With("method", r.Method, "path", r.URL.Path)
		r = r.WithContext(log.WithLogger(r.Context(), logger))
		m := httpsnoop.CaptureMetrics(next, w, r)
		logger.Debug("http request",
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration)
	})
}

// recoverPanics turns a handler panic into a 500 JSON error.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.Error("panic while handling request",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))
			writeError(w, http.StatusInternalServerError, MsgInternalError)
		}()
		next.ServeHTTP(w, r)
	})
}

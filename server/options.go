package server

import (
	"io/fs"
	golog "log"

	"github.com/deepnoodle-ai/archsketch/log"
)

// Option is a function that configures the Server.
type Option func(*Server)

// WithAssets serves static files from fsys instead of the embedded set.
func WithAssets(fsys fs.FS) Option {
	return func(s *Server) {
		if fsys != nil {
			s.assets = fsys
		}
	}
}

// WithEntryPage sets the file served for "/".
func WithEntryPage(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.entryPage = name
		}
	}
}

// WithEdgeValidation rejects generations that fail Generation.Validate.
func WithEdgeValidation(enabled bool) Option {
	return func(s *Server) {
		s.validateEdges = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorLog sets the logger net/http uses for connection and handler
// errors it reports itself.
func WithErrorLog(l *golog.Logger) Option {
	return func(s *Server) {
		s.errorLog = l
	}
}

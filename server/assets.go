package server

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/deepnoodle-ai/archsketch/log"
)

// DefaultEntryPage is the embedded HTML page served for "/".
const DefaultEntryPage = "system-design.html"

//go:embed static
var staticFiles embed.FS

// DefaultAssets returns the embedded browser client.
func DefaultAssets() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.serveAsset(w, r, s.entryPage)
}

// handleAsset serves GET /{filename}. The route only matches a single path
// segment, so nested paths never reach it.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	s.serveAsset(w, r, r.PathValue("filename"))
}

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request, name string) {
	if !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}
	info, err := fs.Stat(s.assets, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Ctx(r.Context()).Warn("failed to stat asset", "name", name, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		http.NotFound(w, r)
		return
	}
	// ServeFileFS would redirect ".../index.html" to the directory.
	data, err := fs.ReadFile(s.assets, name)
	if err != nil {
		log.Ctx(r.Context()).Warn("failed to read asset", "name", name, "error", err)
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, name, info.ModTime(), bytes.NewReader(data))
}

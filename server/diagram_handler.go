package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/deepnoodle-ai/archsketch"
	"github.com/deepnoodle-ai/archsketch/log"
)

// handleGenerateDiagram serves POST /api/generate_diagram.
func (s *Server) handleGenerateDiagram(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusInternalServerError, MsgClientNotInitialized)
		return
	}

	instructions, ok := decodeInstructions(r.Body)
	if !ok {
		writeError(w, http.StatusBadRequest, MsgNoInstructions)
		return
	}

	gen, err := s.generator.GenerateDiagram(r.Context(), instructions)
	if err == nil && (gen == nil || len(gen.Raw) == 0) {
		err = archsketch.ErrNoGeneration
	}
	if err == nil && s.validateEdges {
		err = gen.Validate()
	}
	if err != nil {
		log.Ctx(r.Context()).Error("failed to generate diagram", "error", err)
		writeError(w, http.StatusInternalServerError, MsgGenerateFailedPrefix+err.Error())
		return
	}
	writeRawJSON(w, http.StatusOK, gen.Raw)
}

// decodeInstructions reads a single JSON object with a non-empty string
// "instructions" field. Anything after the object other than whitespace
// makes the body invalid.
func decodeInstructions(body io.Reader) (string, bool) {
	dec := json.NewDecoder(body)
	var req archsketch.Request
	if err := dec.Decode(&req); err != nil || req.Instructions == "" {
		return "", false
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return "", false
	}
	return req.Instructions, true
}

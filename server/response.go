package server

import (
	"encoding/json"
	"net/http"
)

// Error messages returned in the JSON error envelope.
const (
	MsgNoInstructions       = "No instructions provided."
	MsgClientNotInitialized = "AI client not initialized. Check your API key."
	MsgGenerateFailedPrefix = "Failed to generate diagram: "
	MsgInternalError        = "internal server error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, MsgInternalError, http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, data)
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
	w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

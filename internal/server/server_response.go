package server

import (
	"encoding/json"
	"net/http"
)

// Every habit endpoint answers with this envelope.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, data any) {
	_ = writeJSON(w, code, apiResponse{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	_ = writeJSON(w, code, apiResponse{Success: true, Message: msg})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	_ = writeJSON(w, code, apiResponse{Success: false, Error: msg})
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/osite-go/internal/content"
)

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`
}

// notDurableWarning is attached to mutating responses accepted while no
// content backend is configured.
const notDurableWarning = "content backend unavailable, change not persisted"

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess writes a success envelope. persisted=false adds the
// not-durable warning so clients can surface it.
func writeSuccess(w http.ResponseWriter, statusCode int, data any, persisted bool) {
	env := envelope{Success: true, Data: data}
	if !persisted {
		env.Warning = notDurableWarning
	}
	writeJSON(w, statusCode, env)
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, envelope{Success: false, Error: message})
}

// writeContentError maps content layer errors to HTTP responses.
func writeContentError(w http.ResponseWriter, err error) {
	var vErr *content.ValidationError
	switch {
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Message)
	default:
		slog.Error("content operation failed", "error", err, "category", "content")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a request body into v, limiting its size.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

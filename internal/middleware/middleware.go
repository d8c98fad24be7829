// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// caching, rate limiting, and request hardening.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// apiError is the JSON error envelope shared by all middleware responses.
// It matches the shape returned by the API handlers.
type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSONError writes a JSON error response with the given status code.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(apiError{Success: false, Error: message})
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// X-Real-IP is set by reverse proxies
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	// X-Forwarded-For can contain multiple IPs; take the first one
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if idx := strings.IndexByte(ip, ','); idx != -1 {
			ip = ip[:idx]
		}
		return strings.TrimSpace(ip)
	}

	return r.RemoteAddr
}

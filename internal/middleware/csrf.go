// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for CSRF protection.
// Note: filippo.io/csrf/gorilla uses Fetch metadata headers instead of
// cookies, so cookie-related options are not needed.
type CSRFConfig struct {
	// AuthKey is a 32-byte key used to authenticate the CSRF token.
	// This should be the same as the session secret for simplicity.
	AuthKey []byte

	// TrustedOrigins is a list of origins allowed to make cross-origin
	// requests, host-only values rather than full URLs.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns a CSRFConfig with sensible defaults. In
// development localhost origins are trusted so the frontend dev server
// can talk to the API.
func DefaultCSRFConfig(authKey []byte, isDev bool, port string) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}

	if isDev {
		cfg.TrustedOrigins = []string{
			"localhost:" + port,
			"127.0.0.1:" + port,
			"localhost:5173", // vite dev server
		}
	}

	return cfg
}

// CSRF returns a middleware providing CSRF protection for mutating
// requests. Validation failures get the JSON error envelope.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	}

	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reasonStr := "unknown"
	if reason := csrf.FailureReason(r); reason != nil {
		reasonStr = reason.Error()
	}
	slog.Error("CSRF validation failed",
		"reason", reasonStr,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
		"category", "auth",
	)
	writeJSONError(w, http.StatusForbidden, "CSRF validation failed")
}

// SkipCSRF returns a middleware that skips CSRF protection for specific
// paths. The public contact endpoint accepts cross-origin form posts.
func SkipCSRF(paths ...string) func(http.Handler) http.Handler {
	skipPaths := make(map[string]bool)
	for _, p := range paths {
		skipPaths[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipPaths[r.URL.Path] {
				r = csrf.UnsafeSkipCheck(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}

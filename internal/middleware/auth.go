// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/osite-go/internal/session"
)

// RequireAdmin creates middleware that requires an authenticated admin
// session. API clients get a JSON 401 rather than a redirect so the
// frontend can route to its own login screen.
func RequireAdmin(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.IsAdmin(sm, r) {
				slog.Warn("unauthenticated admin request",
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", getClientIP(r),
					"category", "auth",
				)
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

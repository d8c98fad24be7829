// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/olegiv/osite-go/internal/session"
)

// loginRequest is the POST /api/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the admin and establishes a session. Failed attempts
// count toward account lockout regardless of source IP.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if h.loginLog != nil {
		if locked, remaining := h.loginLog.IsAccountLocked(email); locked {
			h.logger.Warn("login attempt on locked account",
				"email", email, "remaining", remaining, "category", "auth")
			writeError(w, http.StatusTooManyRequests, "account temporarily locked, try again later")
			return
		}
	}

	ok, err := h.admin.Verify(email, req.Password)
	if err != nil {
		h.logger.Error("credential verification failed", "error", err, "category", "auth")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !ok {
		if h.loginLog != nil {
			h.loginLog.RecordFailedAttempt(email)
		}
		h.logger.Warn("failed login attempt", "email", email, "category", "auth")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if h.loginLog != nil {
		h.loginLog.RecordSuccessfulLogin(email)
	}

	if err := session.SignIn(h.sessions, r, email); err != nil {
		h.logger.Error("session sign-in failed", "error", err, "category", "auth")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("admin signed in", "email", email, "category", "auth")
	writeSuccess(w, http.StatusOK, map[string]string{"email": email}, true)
}

// Logout destroys the admin session. Always succeeds, even without one.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := session.SignOut(h.sessions, r); err != nil {
		h.logger.Error("session sign-out failed", "error", err, "category", "auth")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusOK, nil, true)
}

// Me reports the current session's auth state so the dashboard can decide
// whether to show the login screen.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	if !session.IsAdmin(h.sessions, r) {
		writeSuccess(w, http.StatusOK, map[string]any{"authenticated": false}, true)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"email":         h.sessions.GetString(r.Context(), session.KeyAdminEmail),
	}, true)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the admin session manager.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyIsAdmin    = "is_admin"
	KeyAdminEmail = "admin_email"
)

// New creates a session manager backed by the in-memory store. There is a
// single admin account, so losing sessions on restart only forces one
// re-login.
func New(isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}

// IsAdmin reports whether the request carries an authenticated admin session.
func IsAdmin(sm *scs.SessionManager, r *http.Request) bool {
	return sm.GetBool(r.Context(), KeyIsAdmin)
}

// SignIn marks the session as an authenticated admin. The session token is
// renewed to prevent fixation.
func SignIn(sm *scs.SessionManager, r *http.Request, email string) error {
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}
	sm.Put(r.Context(), KeyIsAdmin, true)
	sm.Put(r.Context(), KeyAdminEmail, email)
	return nil
}

// SignOut destroys the session.
func SignOut(sm *scs.SessionManager, r *http.Request) error {
	return sm.Destroy(r.Context())
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/osite-go/internal/session"
)

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	sm := session.New(true)
	h := sm.LoadAndSave(RequireAdmin(sm)(okHandler()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if e := decodeError(t, rec); e.Success || e.Error == "" {
		t.Errorf("unexpected error envelope: %+v", e)
	}
}

func TestRequireAdminAllowsSignedIn(t *testing.T) {
	sm := session.New(true)

	var status int
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := session.SignIn(sm, r, "admin@example.com"); err != nil {
			t.Fatalf("SignIn: %v", err)
		}
		rec := httptest.NewRecorder()
		RequireAdmin(sm)(okHandler()).ServeHTTP(rec, r)
		status = rec.Code
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
}

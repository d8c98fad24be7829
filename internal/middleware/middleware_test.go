// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return e
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr only", nil, "192.0.2.1:1234", "192.0.2.1:1234"},
		{"x-real-ip", map[string]string{"X-Real-IP": "203.0.113.5"}, "10.0.0.1:80", "203.0.113.5"},
		{"x-forwarded-for single", map[string]string{"X-Forwarded-For": "203.0.113.9"}, "10.0.0.1:80", "203.0.113.9"},
		{"x-forwarded-for chain", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.2"}, "10.0.0.1:80", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublicCache(t *testing.T) {
	h := PublicCache(60)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	want := "public, s-maxage=60, stale-while-revalidate=60"
	if got := rec.Header().Get("Cache-Control"); got != want {
		t.Errorf("GET Cache-Control = %q, want %q", got, want)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products", nil))
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("POST Cache-Control = %q, want no-store", got)
	}
}

func TestStaticCache(t *testing.T) {
	h := StaticCache(3600)(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	h := SecurityHeaders(cfg)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("Strict-Transport-Security = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("Content-Security-Policy not set")
	}
}

func TestSecurityHeadersDevelopmentSkipsHSTS(t *testing.T) {
	h := SecurityHeaders(DefaultSecurityHeadersConfig(true))(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("development response carries HSTS: %q", got)
	}
}

func TestGlobalRateLimiter(t *testing.T) {
	rl := NewGlobalRateLimiter(1, 2)
	h := rl.Middleware()(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		r.RemoteAddr = "192.0.2.7:1000"
		h.ServeHTTP(rec, r)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("burst requests rejected: %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request not limited: %v", statuses)
	}

	// A different IP has its own budget
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	r.RemoteAddr = "192.0.2.8:1000"
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Errorf("fresh IP limited: %d", rec.Code)
	}
}

func TestLimiterCacheClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")

	if lc.clearIfExceeds(5) {
		t.Error("cache cleared below threshold")
	}
	if !lc.clearIfExceeds(1) {
		t.Error("cache not cleared above threshold")
	}
}

func TestLoginProtectionLockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	email := "admin@example.com"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("fresh account reported locked")
	}

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 1 {
		t.Errorf("remaining attempts = %d, want 1", got)
	}

	locked, dur := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("third failure did not lock the account")
	}
	if dur != time.Minute {
		t.Errorf("lock duration = %v, want 1m", dur)
	}

	if locked, remaining := lp.IsAccountLocked(email); !locked || remaining <= 0 {
		t.Errorf("IsAccountLocked = %v, %v after lockout", locked, remaining)
	}

	lp.RecordSuccessfulLogin(email)
	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("remaining attempts after success = %d, want 3", got)
	}
}

func TestLoginProtectionExponentialBackoff(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 1,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Hour,
	})

	_, first := lp.RecordFailedAttempt("a@b.c")
	if first != time.Minute {
		t.Errorf("first lockout = %v, want 1m", first)
	}
	_, second := lp.RecordFailedAttempt("a@b.c")
	if second != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", second)
	}
}

func TestLoginProtectionMiddleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 1, IPBurst: 1})
	h := lp.Middleware()(okHandler())

	// GET requests bypass the limiter
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/login", nil)
		r.RemoteAddr = "192.0.2.9:1"
		h.ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET #%d limited", i)
		}
	}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	r.RemoteAddr = "192.0.2.9:1"
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("first POST limited: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/api/login", nil)
	r.RemoteAddr = "192.0.2.9:1"
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST not limited: %d", rec.Code)
	}
	if e := decodeError(t, rec); e.Success || e.Error == "" {
		t.Errorf("unexpected error envelope: %+v", e)
	}
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	h := Timeout(20 * time.Millisecond)(slow)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if e := decodeError(t, rec); e.Success {
		t.Errorf("timeout envelope reports success")
	}
}

func TestTimeoutPassesFastRequests(t *testing.T) {
	h := Timeout(time.Second)(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("fast request mangled: %d %q", rec.Code, rec.Body.String())
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS and relaxes CSP when true.
	IsDevelopment bool

	// ContentSecurityPolicy is the CSP header value.
	// If empty, a default policy is used.
	ContentSecurityPolicy string

	// HSTSMaxAge is the max-age for Strict-Transport-Security in seconds.
	// Default is 31536000 (1 year). Set to 0 to disable HSTS.
	HSTSMaxAge int

	// HSTSIncludeSubDomains includes subdomains in HSTS policy.
	HSTSIncludeSubDomains bool

	// FrameOptions controls the X-Frame-Options header.
	// Valid values: "DENY", "SAMEORIGIN", or empty to disable.
	FrameOptions string

	// ReferrerPolicy controls the Referrer-Policy header.
	// Default is "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// PermissionsPolicy controls the Permissions-Policy header.
	// If empty, a restrictive default policy is used.
	PermissionsPolicy string
}

// DefaultSecurityHeadersConfig returns a SecurityHeadersConfig with defaults
// suited to a JSON API plus static frontend. Images may come from the media
// store which can live on another host, hence img-src https:.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		HSTSMaxAge:     31536000, // 1 year
		FrameOptions:   "SAMEORIGIN",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}

	scriptSrc := "'self'"
	connectSrc := "'self'"
	if isDev {
		// Relaxed for the frontend dev server
		scriptSrc = "'self' 'unsafe-inline' 'unsafe-eval'"
		connectSrc = "'self' ws: http://localhost:5173"
	}

	cfg.ContentSecurityPolicy = buildCSP(map[string]string{
		"default-src": "'self'",
		"script-src":  scriptSrc,
		"style-src":   "'self' 'unsafe-inline'",
		"img-src":     "'self' data: blob: https:",
		"font-src":    "'self' data:",
		"connect-src": connectSrc,
		"object-src":  "'none'",
		"base-uri":    "'self'",
		"form-action": "'self'",
	})

	if !isDev {
		cfg.HSTSIncludeSubDomains = true
	}

	cfg.PermissionsPolicy = buildPermissionsPolicy(map[string]string{
		"accelerometer": "()",
		"camera":        "()",
		"geolocation":   "()",
		"gyroscope":     "()",
		"magnetometer":  "()",
		"microphone":    "()",
		"payment":       "()",
		"usb":           "()",
	})

	return cfg
}

// buildCSP builds a Content-Security-Policy string from a map of directives.
func buildCSP(directives map[string]string) string {
	// Fixed order for consistent output
	order := []string{
		"default-src", "script-src", "style-src", "img-src", "font-src",
		"connect-src", "frame-src", "object-src", "base-uri", "form-action",
	}

	var parts []string
	for _, key := range order {
		if value, ok := directives[key]; ok {
			parts = append(parts, key+" "+value)
		}
	}
	return strings.Join(parts, "; ")
}

// buildPermissionsPolicy builds a Permissions-Policy string from a map.
func buildPermissionsPolicy(policies map[string]string) string {
	var parts []string
	for key, value := range policies {
		parts = append(parts, key+"="+value)
	}
	return strings.Join(parts, ", ")
}

// SecurityHeaders returns a middleware that adds security headers to responses.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.ContentSecurityPolicy != "" {
				w.Header().Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}

			// HSTS only applies in production over HTTPS
			if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
				hsts := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
				if cfg.HSTSIncludeSubDomains {
					hsts += "; includeSubDomains"
				}
				w.Header().Set("Strict-Transport-Security", hsts)
			}

			if cfg.FrameOptions != "" {
				w.Header().Set("X-Frame-Options", cfg.FrameOptions)
			}

			w.Header().Set("X-Content-Type-Options", "nosniff")

			if cfg.ReferrerPolicy != "" {
				w.Header().Set("Referrer-Policy", cfg.ReferrerPolicy)
			}

			if cfg.PermissionsPolicy != "" {
				w.Header().Set("Permissions-Policy", cfg.PermissionsPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}

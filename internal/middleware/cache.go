// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// PublicCache adds Cache-Control headers for public read endpoints. The
// stale-while-revalidate window lets CDNs serve the previous document while
// refetching, which matches the server-side cache TTL. Only safe methods
// are marked cacheable.
func PublicCache(maxAge int) func(http.Handler) http.Handler {
	value := "public, s-maxage=" + strconv.Itoa(maxAge) +
		", stale-while-revalidate=" + strconv.Itoa(maxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", value)
			} else {
				w.Header().Set("Cache-Control", "no-store")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StaticCache adds Cache-Control headers for static files.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore marks responses as uncacheable. Used for admin routes where
// intermediaries must never retain a copy.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
)

// healthResponse is the GET /api/health payload.
type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Backend     bool   `json:"backend"`
	MediaStore  bool   `json:"mediaStore"`
	CacheHits   int64  `json:"cacheHits"`
	CacheMisses int64  `json:"cacheMisses"`
}

// Health reports service status. Always 200; a missing backend is a
// degraded mode, not an outage.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	hits, misses := h.cache.Stats()
	writeSuccess(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Version:     h.version.Version,
		Backend:     h.store.Available(),
		MediaStore:  h.media.Available(),
		CacheHits:   hits,
		CacheMisses: misses,
	}, true)
}

// Events returns recent WARN+ log events, newest first, admin only.
func (h *Handler) Events(w http.ResponseWriter, _ *http.Request) {
	if h.events == nil {
		writeSuccess(w, http.StatusOK, []struct{}{}, true)
		return
	}
	writeSuccess(w, http.StatusOK, h.events.Recent(), true)
}

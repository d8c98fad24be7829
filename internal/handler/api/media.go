// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/osite-go/internal/media"
)

// UploadMedia accepts a multipart image upload, stores it in the object
// store and returns the object key plus thumbnail key.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if !h.media.Available() {
		writeError(w, http.StatusServiceUnavailable, "media store not configured")
		return
	}

	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.media.Upload(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, media.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "media store not configured")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeSuccess(w, http.StatusCreated, result, true)
}

// ServeMedia streams a stored object to the client.
func (h *Handler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	key, ok := mediaKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid media key")
		return
	}

	rc, info, err := h.media.Open(r.Context(), key)
	if err != nil {
		writeMediaError(w, err)
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", info.ContentType)
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	_, _ = io.Copy(w, rc)
}

// DeleteMedia removes a stored object and its thumbnail.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	key, ok := mediaKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid media key")
		return
	}

	if err := h.media.Delete(r.Context(), key); err != nil {
		writeMediaError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"key": key}, true)
}

func writeMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "media store not configured")
	case errors.Is(err, media.ErrObjectNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// mediaKey extracts and validates the wildcard object key. Keys are
// slug-and-slash shaped; anything with dot segments or other characters
// is rejected before touching the store.
func mediaKey(r *http.Request) (string, bool) {
	key := chi.URLParam(r, "*")
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" {
			return "", false
		}
		for _, c := range part {
			valid := c == '-' || c == '.' ||
				(c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
			if !valid {
				return "", false
			}
		}
	}
	return key, true
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/osite-go/internal/media"
)

// stubObjectStore serves fixed objects for route tests.
type stubObjectStore struct {
	objects map[string][]byte
}

func (s *stubObjectStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *stubObjectStore) Get(_ context.Context, key string) (io.ReadCloser, media.ObjectInfo, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, media.ObjectInfo{}, media.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), media.ObjectInfo{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: "image/png",
	}, nil
}

func (s *stubObjectStore) Remove(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func newMediaRouter(objects map[string][]byte) http.Handler {
	h := NewHandler(Config{
		Media:  media.NewService(&stubObjectStore{objects: objects}, discardLogger()),
		Logger: discardLogger(),
	})
	r := chi.NewRouter()
	r.Mount("/media", h.MediaRoutes(3600))
	return r
}

func TestServeMedia(t *testing.T) {
	router := newMediaRouter(map[string][]byte{
		"uploads/logo-abc123.png": []byte("png-bytes"),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/uploads/logo-abc123.png", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "png-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestServeMediaMissing(t *testing.T) {
	router := newMediaRouter(map[string][]byte{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/uploads/none.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestServeMediaRejectsBadKeys(t *testing.T) {
	router := newMediaRouter(map[string][]byte{})

	paths := []string{
		"/media/..%2Fetc%2Fpasswd",
		"/media/uploads/UPPER.png",
		"/media/uploads/sp%20ace.png",
	}
	for _, p := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusBadRequest && rec.Code != http.StatusNotFound {
			t.Errorf("%s = %d, want rejection", p, rec.Code)
		}
	}
}

func TestMediaKeyValidation(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"uploads/photo-abc.jpg", true},
		{"uploads/photo-abc-thumb.jpg", true},
		{"", false},
		{"../secret", false},
		{"uploads//двойной", false},
		{"uploads/UPPER.png", false},
		{"uploads/has space.png", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := chi.NewRouteContext()
		ctx.URLParams.Add("*", tt.key)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, ctx))

		if _, got := mediaKey(r); got != tt.want {
			t.Errorf("mediaKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/osite-go/internal/content"
)

// sectionHandler exposes one section repository as REST endpoints.
type sectionHandler[T content.Item[T], P content.Patch[T]] struct {
	repo *content.Repository[T, P]
}

// mountSection registers CRUD routes for a section repository. Reads are
// public; writes go through the supplied admin middleware.
func mountSection[T content.Item[T], P content.Patch[T]](r chi.Router, path string, repo *content.Repository[T, P], requireAdmin func(http.Handler) http.Handler) {
	h := &sectionHandler[T, P]{repo: repo}

	r.Route(path, func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.get)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

// list returns the section's items in display order.
func (h *sectionHandler[T, P]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.GetAll(r.Context())
	if err != nil {
		writeContentError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeSuccess(w, http.StatusOK, items, true)
}

func (h *sectionHandler[T, P]) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeContentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, item, true)
}

func (h *sectionHandler[T, P]) create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	created, persisted, err := h.repo.Create(r.Context(), item)
	if err != nil {
		writeContentError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, created, persisted)
}

func (h *sectionHandler[T, P]) update(w http.ResponseWriter, r *http.Request) {
	var patch P
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	updated, persisted, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeContentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, updated, persisted)
}

func (h *sectionHandler[T, P]) delete(w http.ResponseWriter, r *http.Request) {
	persisted, err := h.repo.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeContentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, persisted)
}

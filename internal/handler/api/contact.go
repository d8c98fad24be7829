// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/osite-go/internal/model"
)

// contactPolicy strips all markup from submitted text. Contact messages
// are rendered in the admin dashboard, so stored values must be inert.
var contactPolicy = bluemonday.StrictPolicy()

// contactRequest is the POST /api/contact body.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact accepts a public contact form submission and stores it in the
// messages section. The response carries the not-durable warning when no
// backend is configured, but the submission is still accepted.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg := model.Message{
		Name:      strings.TrimSpace(contactPolicy.Sanitize(req.Name)),
		Email:     strings.TrimSpace(contactPolicy.Sanitize(req.Email)),
		Body:      strings.TrimSpace(contactPolicy.Sanitize(req.Message)),
		CreatedAt: time.Now().UTC(),
	}

	created, persisted, err := h.repos.Messages.Create(r.Context(), msg)
	if err != nil {
		writeContentError(w, err)
		return
	}

	h.logger.Info("contact message received",
		"id", created.ID, "persisted", persisted, "category", "content")
	writeSuccess(w, http.StatusCreated, map[string]string{"id": created.ID}, persisted)
}

// ListMessages returns all stored contact messages, admin only.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.repos.Messages.GetAll(r.Context())
	if err != nil {
		writeContentError(w, err)
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	writeSuccess(w, http.StatusOK, msgs, true)
}

// GetMessage returns one contact message by ID.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.repos.Messages.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeContentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, msg, true)
}

// DeleteMessage removes a contact message.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	persisted, err := h.repos.Messages.Delete(r.Context(), id)
	if err != nil {
		writeContentError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, persisted)
}

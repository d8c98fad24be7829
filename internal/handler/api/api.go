// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API for the site content and admin
// dashboard.
package api

import (
	"log/slog"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/osite-go/internal/auth"
	"github.com/olegiv/osite-go/internal/content"
	"github.com/olegiv/osite-go/internal/logging"
	"github.com/olegiv/osite-go/internal/media"
	"github.com/olegiv/osite-go/internal/middleware"
	"github.com/olegiv/osite-go/internal/version"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	repos    *content.Repositories
	store    *content.Store
	cache    *content.DocumentCache
	sessions *scs.SessionManager
	admin    auth.Admin
	loginLog *middleware.LoginProtection
	media    *media.Service
	events   *logging.RecentHandler
	version  version.Info
	logger   *slog.Logger
}

// Config bundles the dependencies for NewHandler.
type Config struct {
	Repos    *content.Repositories
	Store    *content.Store
	Cache    *content.DocumentCache
	Sessions *scs.SessionManager
	Admin    auth.Admin
	LoginLog *middleware.LoginProtection
	Media    *media.Service
	Events   *logging.RecentHandler
	Version  version.Info
	Logger   *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		repos:    cfg.Repos,
		store:    cfg.Store,
		cache:    cfg.Cache,
		sessions: cfg.Sessions,
		admin:    cfg.Admin,
		loginLog: cfg.LoginLog,
		media:    cfg.Media,
		events:   cfg.Events,
		version:  cfg.Version,
		logger:   logger,
	}
}

// Routes builds the API router. cacheSeconds controls the Cache-Control
// max-age on public reads, matching the server-side cache TTL. contactLimit
// rate limits the public contact endpoint per IP.
func (h *Handler) Routes(cacheSeconds int, contactLimit *middleware.GlobalRateLimiter) chi.Router {
	requireAdmin := middleware.RequireAdmin(h.sessions)

	r := chi.NewRouter()

	r.Get("/health", h.Health)

	// Public content sections, cacheable reads
	r.Group(func(r chi.Router) {
		r.Use(middleware.PublicCache(cacheSeconds))
		mountSection(r, "/products", h.repos.Products, requireAdmin)
		mountSection(r, "/brands", h.repos.Brands, requireAdmin)
		mountSection(r, "/clients", h.repos.Clients, requireAdmin)
		mountSection(r, "/team", h.repos.Team, requireAdmin)
	})

	// Contact form, public but rate limited
	r.Group(func(r chi.Router) {
		if contactLimit != nil {
			r.Use(contactLimit.Middleware())
		}
		r.Post("/contact", h.Contact)
	})

	// Auth
	r.Group(func(r chi.Router) {
		if h.loginLog != nil {
			r.Use(h.loginLog.Middleware())
		}
		r.Post("/login", h.Login)
	})
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)

	// Admin-only resources
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin, middleware.NoStore)

		r.Get("/messages", h.ListMessages)
		r.Get("/messages/{id}", h.GetMessage)
		r.Delete("/messages/{id}", h.DeleteMessage)

		r.Get("/events", h.Events)

		r.Post("/media", h.UploadMedia)
		r.Delete("/media/*", h.DeleteMedia)
	})

	return r
}

// MediaRoutes builds the public media serving router, mounted outside
// /api so object keys map directly to URLs.
func (h *Handler) MediaRoutes(cacheSeconds int) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.StaticCache(cacheSeconds))
		r.Get("/*", h.ServeMedia)
	})
	return r
}

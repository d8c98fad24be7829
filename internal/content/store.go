// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Store reads and writes the content document under a fixed key in a Redis
// backend. A nil client is a supported operating mode (local development
// without infrastructure): reads serve the bundled default document and
// writes report ErrBackendUnavailable.
//
// Store performs no retries; retry policy belongs to callers.
type Store struct {
	client redis.UniversalClient
	key    string
	cache  *DocumentCache
	logger *slog.Logger
}

// NewStore creates a document store. client may be nil for backend-absent
// mode. The cache is required and must be owned by the caller so tests can
// supply one with a fake clock.
func NewStore(client redis.UniversalClient, key string, cache *DocumentCache, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: client,
		key:    key,
		cache:  cache,
		logger: logger,
	}
}

// Available reports whether a backend is configured.
func (s *Store) Available() bool {
	return s.client != nil
}

// Key returns the fixed storage key of the document.
func (s *Store) Key() string {
	return s.key
}

// Load returns the current document, consulting the read cache first. The
// returned document is a private copy; callers may mutate it freely.
//
// A missing backend or an absent key yields the bundled default document,
// not an error. A stored document that fails to decode yields a ParseError:
// corrupt content must surface, not silently revert to defaults.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	if doc, ok := s.cache.Get(); ok {
		return doc.Clone()
	}

	doc, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(doc)
	return doc.Clone()
}

// fetch reads the document from the backend, bypassing the cache.
func (s *Store) fetch(ctx context.Context) (*Document, error) {
	if s.client == nil {
		s.logger.Debug("content backend not configured, serving bundled defaults")
		return DefaultDocument()
	}

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Info("content key absent, serving bundled defaults", "key", s.key)
		return DefaultDocument()
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %q: %w", s.key, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Key: s.key, Err: err}
	}
	return &doc, nil
}

// Save serializes the full document and writes it under the fixed key,
// invalidating the read cache on success. Returns ErrBackendUnavailable
// when no backend is configured; the caller must treat that as "accepted
// but not persisted", not as a failure.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	if s.client == nil {
		return ErrBackendUnavailable
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document %q: %w", s.key, err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return &WriteError{Key: s.key, Err: err}
	}

	s.cache.Invalidate()
	return nil
}

// MutateSection is the single read-modify-write primitive every mutating
// repository operation goes through: load the current document, apply fn to
// a private copy, write the whole document back. Only fn's target section
// changes; everything else passes through untouched.
//
// Two concurrent mutations race: whichever Save lands last wins the whole
// document. There is no version stamp or compare-and-swap; a future CAS can
// be added here without touching repository call sites.
//
// The returned bool reports whether the change was persisted. It is false
// with a nil error when the backend is absent.
func (s *Store) MutateSection(ctx context.Context, fn func(*Document) error) (*Document, bool, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := fn(doc); err != nil {
		return nil, false, err
	}

	if err := s.Save(ctx, doc); err != nil {
		if errors.Is(err, ErrBackendUnavailable) {
			return doc, false, nil
		}
		return nil, false, err
	}
	return doc, true, nil
}

// Seed writes the bundled default document on first deploy. It is a no-op
// when the backend is absent or the key already holds a document.
func (s *Store) Seed(ctx context.Context) error {
	if s.client == nil {
		return nil
	}

	data, err := json.Marshal(mustDefaultDocument())
	if err != nil {
		return fmt.Errorf("encoding default document: %w", err)
	}

	set, err := s.client.SetNX(ctx, s.key, data, 0).Result()
	if err != nil {
		return &WriteError{Key: s.key, Err: err}
	}
	if set {
		s.logger.Info("seeded content document", "key", s.key)
	}
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "fmt"

// Error is a sentinel error type for content store conditions.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrBackendUnavailable indicates no key-value backend is configured.
	// Reads fall back to the bundled default document; writes are accepted
	// but not persisted. Never surfaced as a hard failure.
	ErrBackendUnavailable Error = "content backend unavailable"

	// ErrNotFound indicates the requested item ID is absent from its section.
	ErrNotFound Error = "item not found"
)

// ValidationError reports a rejected create. The message is safe to show
// to the administrator.
type ValidationError struct {
	Section string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s item: %s", e.Section, e.Message)
}

// ParseError reports a stored document that could not be decoded. Unlike a
// missing backend this is a hard failure: silently replacing corrupt content
// with defaults would hide data loss.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing stored document %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError reports a failed backend write for a configured backend.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing document %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

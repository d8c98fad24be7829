// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"strings"
	"time"
)

// Message is a contact form submission. Messages have no meaningful slug
// source, so their IDs are generated UUIDs.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// ItemID returns the message's unique identifier.
func (m Message) ItemID() string { return m.ID }

// WithID returns a copy of the message with the given ID assigned.
func (m Message) WithID(id string) Message { m.ID = id; return m }

// SlugSource returns "" so message IDs fall back to UUID generation.
func (m Message) SlugSource() string { return "" }

// Validate checks the fields required to accept a contact submission.
func (m Message) Validate() error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	if m.Email == "" {
		return errors.New("email is required")
	}
	if !looksLikeEmail(m.Email) {
		return errors.New("email is not valid")
	}
	if m.Body == "" {
		return errors.New("message body is required")
	}
	return nil
}

// MessagePatch is a partial update to a message. Submissions are read-only
// in practice, but the admin dashboard uses it to annotate handled messages.
type MessagePatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// Apply merges the patch onto m and returns the result.
func (mp MessagePatch) Apply(m Message) Message {
	if mp.Name != nil {
		m.Name = *mp.Name
	}
	if mp.Email != nil {
		m.Email = *mp.Email
	}
	if mp.Body != nil {
		m.Body = *mp.Body
	}
	return m
}

// looksLikeEmail performs a minimal shape check: one "@" with a dot in the
// domain part. Full RFC validation is out of scope for a contact form.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "errors"

// Client is a customer logo entry in the clients section.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Website string `json:"website,omitempty"`
}

// ItemID returns the client's unique identifier.
func (c Client) ItemID() string { return c.ID }

// WithID returns a copy of the client with the given ID assigned.
func (c Client) WithID(id string) Client { c.ID = id; return c }

// SlugSource returns the string the client's ID is derived from.
func (c Client) SlugSource() string { return c.Name }

// Validate checks the fields required to create a client.
func (c Client) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// ClientPatch is a partial update to a client.
type ClientPatch struct {
	Name    *string `json:"name,omitempty"`
	Logo    *string `json:"logo,omitempty"`
	Website *string `json:"website,omitempty"`
}

// Apply merges the patch onto c and returns the result.
func (cp ClientPatch) Apply(c Client) Client {
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.Logo != nil {
		c.Logo = *cp.Logo
	}
	if cp.Website != nil {
		c.Website = *cp.Website
	}
	return c
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content entities shown on the site: products,
// brands, clients, team members and contact messages. Every entity carries a
// string ID unique within its section, and has a companion Patch type whose
// pointer fields express "set this field" versus "leave it unchanged".
package model

import "errors"

// Product is a catalog entry in the products section.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// ItemID returns the product's unique identifier.
func (p Product) ItemID() string { return p.ID }

// WithID returns a copy of the product with the given ID assigned.
func (p Product) WithID(id string) Product { p.ID = id; return p }

// SlugSource returns the string the product's ID is derived from.
func (p Product) SlugSource() string { return p.Title }

// Validate checks the fields required to create a product.
func (p Product) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// ProductPatch is a partial update to a product. Nil fields are left
// unchanged; non-nil fields overwrite, including to empty values.
type ProductPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Features    *[]string `json:"features,omitempty"`
}

// Apply merges the patch onto p and returns the result.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Features != nil {
		p.Features = *pp.Features
	}
	return p
}

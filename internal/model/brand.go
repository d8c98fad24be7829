// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "errors"

// BestSeller is a highlighted product within a brand. Its ID only needs to
// be unique within the owning brand.
type BestSeller struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Brand is a distributor brand shown in the brands section.
type Brand struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Logo        string       `json:"logo,omitempty"`
	Description string       `json:"description,omitempty"`
	BestSellers []BestSeller `json:"bestSellers,omitempty"`
}

// ItemID returns the brand's unique identifier.
func (b Brand) ItemID() string { return b.ID }

// WithID returns a copy of the brand with the given ID assigned.
func (b Brand) WithID(id string) Brand { b.ID = id; return b }

// SlugSource returns the string the brand's ID is derived from.
func (b Brand) SlugSource() string { return b.Name }

// Validate checks the fields required to create a brand.
func (b Brand) Validate() error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	for _, bs := range b.BestSellers {
		if bs.Name == "" {
			return errors.New("best seller name is required")
		}
	}
	return nil
}

// BrandPatch is a partial update to a brand.
type BrandPatch struct {
	Name        *string       `json:"name,omitempty"`
	Logo        *string       `json:"logo,omitempty"`
	Description *string       `json:"description,omitempty"`
	BestSellers *[]BestSeller `json:"bestSellers,omitempty"`
}

// Apply merges the patch onto b and returns the result.
func (bp BrandPatch) Apply(b Brand) Brand {
	if bp.Name != nil {
		b.Name = *bp.Name
	}
	if bp.Logo != nil {
		b.Logo = *bp.Logo
	}
	if bp.Description != nil {
		b.Description = *bp.Description
	}
	if bp.BestSellers != nil {
		b.BestSellers = *bp.BestSellers
	}
	return b
}

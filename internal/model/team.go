// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "errors"

// TeamMember is a staff entry in the team section.
type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Photo string `json:"photo,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// ItemID returns the team member's unique identifier.
func (m TeamMember) ItemID() string { return m.ID }

// WithID returns a copy of the team member with the given ID assigned.
func (m TeamMember) WithID(id string) TeamMember { m.ID = id; return m }

// SlugSource returns the string the team member's ID is derived from.
func (m TeamMember) SlugSource() string { return m.Name }

// Validate checks the fields required to create a team member.
func (m TeamMember) Validate() error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// TeamMemberPatch is a partial update to a team member.
type TeamMemberPatch struct {
	Name  *string `json:"name,omitempty"`
	Role  *string `json:"role,omitempty"`
	Photo *string `json:"photo,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

// Apply merges the patch onto m and returns the result.
func (mp TeamMemberPatch) Apply(m TeamMember) TeamMember {
	if mp.Name != nil {
		m.Name = *mp.Name
	}
	if mp.Role != nil {
		m.Role = *mp.Role
	}
	if mp.Photo != nil {
		m.Photo = *mp.Photo
	}
	if mp.Bio != nil {
		m.Bio = *mp.Bio
	}
	return m
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the single-document content store behind the
// site: one JSON document in a key-value backend, divided into named
// sections (products, brands, clients, team, messages) that are edited
// independently through generic section repositories.
package content

import (
	"encoding/json"
	"fmt"

	"github.com/olegiv/osite-go/internal/model"
)

// Section is a named array field of the Document: a heading plus an ordered
// list of items. Item order is insertion order and is meaningful for display.
type Section[T any] struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Items    []T    `json:"items"`
}

// Document is the whole site content: every section plus top-level config
// blocks. There is exactly one canonical document per deployment, stored
// under a fixed key. Top-level fields this version does not model are kept
// verbatim in Extra so a round-trip never drops them.
type Document struct {
	Header   json.RawMessage            `json:"header,omitempty"`
	Footer   json.RawMessage            `json:"footer,omitempty"`
	SEO      json.RawMessage            `json:"seo,omitempty"`
	Products *Section[model.Product]    `json:"products,omitempty"`
	Brands   *Section[model.Brand]      `json:"brands,omitempty"`
	Clients  *Section[model.Client]     `json:"clients,omitempty"`
	Team     *Section[model.TeamMember] `json:"team,omitempty"`
	Messages *Section[model.Message]    `json:"messages,omitempty"`
	Extra    map[string]json.RawMessage `json:"-"`
}

// knownKeys are the top-level fields Document models explicitly.
var knownKeys = map[string]bool{
	"header": true, "footer": true, "seo": true,
	"products": true, "brands": true, "clients": true, "team": true, "messages": true,
}

// docAlias avoids marshal recursion.
type docAlias Document

// UnmarshalJSON decodes the modeled fields and stashes every unknown
// top-level field in Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var alias docAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*d = Document(alias)

	for key, raw := range fields {
		if knownKeys[key] {
			continue
		}
		if d.Extra == nil {
			d.Extra = make(map[string]json.RawMessage)
		}
		d.Extra[key] = raw
	}
	return nil
}

// MarshalJSON encodes the modeled fields and merges Extra back in.
func (d Document) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(docAlias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return data, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for key, raw := range d.Extra {
		if !knownKeys[key] {
			fields[key] = raw
		}
	}
	return json.Marshal(fields)
}

// Clone returns a deep copy of the document via a JSON round-trip. Mutating
// operations work on clones so the read cache never aliases caller state.
func (d *Document) Clone() (*Document, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("cloning document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cloning document: %w", err)
	}
	return &out, nil
}

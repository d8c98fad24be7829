// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// defaultJSON is the bundled document served when no backend is configured
// and seeded into the backend on first deploy.
//
//go:embed default.json
var defaultJSON []byte

// DefaultDocument returns a fresh decode of the bundled default document.
// Each call returns an independent copy, safe for the caller to mutate.
func DefaultDocument() (*Document, error) {
	var doc Document
	if err := json.Unmarshal(defaultJSON, &doc); err != nil {
		return nil, fmt.Errorf("decoding bundled default document: %w", err)
	}
	return &doc, nil
}

// mustDefaultDocument panics if the embedded default is malformed. The
// embedded file is part of the build, so this is a build defect, not a
// runtime condition.
func mustDefaultDocument() *Document {
	doc, err := DefaultDocument()
	if err != nil {
		panic(err)
	}
	return doc
}

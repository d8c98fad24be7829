// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions, including the
// slug generation used for content item identifiers.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches everything that may not appear in a slug.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// hyphenRuns matches runs of two or more hyphens.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// deaccent removes combining marks after NFD decomposition, so that
// "Café" becomes "Cafe" rather than being dropped entirely.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a string to a URL-friendly slug: lowercase, accents
// stripped, whitespace collapsed to single hyphens, and everything outside
// [a-z0-9-] removed. Returns "" when nothing slug-worthy remains.
func Slugify(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		out = s
	}

	out = strings.ToLower(out)
	out = strings.Join(strings.Fields(out), "-")
	out = nonSlugChars.ReplaceAllString(out, "")
	out = hyphenRuns.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// IsValidSlug reports whether s consists solely of lowercase letters,
// digits and single interior hyphens.
func IsValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	if strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return true
}

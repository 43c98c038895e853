// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns arbitrary names into short, URL and object-key safe
// slugs.
package slug

import (
	"regexp"
	"strings"
)

// MaxLen is the longest slug Generate returns.
const MaxLen = 60

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, whitespace or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators matches runs of whitespace and hyphens.
	separators = regexp.MustCompile(`[\s-]+`)
)

// Generate creates a slug from s.
// Example: "Town Hall, Night! 2026" → "town-hall-night-2026"
// Slugs longer than MaxLen are cut at the last hyphen that fits.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLen {
		result = result[:MaxLen]
		if i := strings.LastIndex(result, "-"); i > 0 {
			result = result[:i]
		}
	}
	return result
}

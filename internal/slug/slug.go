// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from category names.
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumeric matches a run of characters that are neither lower-case
// letters nor digits. Each run becomes a single hyphen.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate derives a URL-safe slug from the given name.
// Example: "Science & Nature 2026" → "science-nature-2026"
func Generate(name string) string {
	result := strings.ToLower(strings.TrimSpace(name))
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

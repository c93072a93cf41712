package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for category fields.
const (
	maxNameLen     = 255
	maxSlugLen     = 255
	maxDescLen     = 10_000
	maxLanguageLen = 10
)

// validateCategory checks category form inputs and returns the first error found.
// A missing slug is fine — the store derives one from the name.
func validateCategory(name, slugValue, description string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 255 characters)."
	}
	if utf8.RuneCountInString(slugValue) > maxSlugLen {
		return "Slug is too long (max 255 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescLen {
		return "Description is too long (max 10,000 characters)."
	}
	return ""
}

// validateTranslation checks translation inputs and returns the first error found.
func validateTranslation(language, name, description string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return "Language code is required."
	}
	if utf8.RuneCountInString(language) > maxLanguageLen {
		return "Language code is too long (max 10 characters)."
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 255 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescLen {
		return "Description is too long (max 10,000 characters)."
	}
	return ""
}

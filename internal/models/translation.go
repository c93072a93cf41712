// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryTranslation holds the per-language name and description of a
// category. The slug stays on the category row and is never translated.
// One row per (category, language) pair.
type CategoryTranslation struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Language    string    `json:"language"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

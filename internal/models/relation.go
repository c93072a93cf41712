// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRelation attaches a category to an arbitrary external record,
// identified by a type tag and a numeric id. There is deliberately no
// uniqueness constraint: the same category may be attached to the same
// record more than once, and relation rows outlive the external record.
// Deleting the category removes its relations (ON DELETE CASCADE).
type CategoryRelation struct {
	ID           uuid.UUID `json:"id"`
	CategoryID   uuid.UUID `json:"category_id"`
	ExternalType string    `json:"external_type"`
	ExternalID   int64     `json:"external_id"`
	CreatedAt    time.Time `json:"created_at"`
}

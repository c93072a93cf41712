// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the taxonomy service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the taxonomy forest. A nil ParentID marks a root.
// Slugs are globally unique; deleting a category cascades to its entire
// subtree at the database level.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`

	// ExternalType and ExternalID form an optional link to a single
	// external record (the legacy one-to-one attachment; many-to-many
	// attachments live in category_relations).
	ExternalType *string `json:"external_type"`
	ExternalID   *int64  `json:"external_id"`

	// Priority orders listings ascending with nulls last; ties break by name.
	Priority *int `json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Children []Category `json:"children,omitempty"`
	Depth    int        `json:"depth"`
}

// IsRoot returns true if the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

// Structural queries over the category forest: ancestors, descendants,
// roots, leaves, and direct children. Every call re-reads from storage;
// there is no caching at this layer.

import (
	"fmt"

	"github.com/google/uuid"

	"taxopress/internal/models"
)

// Children returns the direct children of a category in canonical order.
func (s *CategoryStore) Children(id uuid.UUID) ([]models.Category, error) {
	items, err := s.queryCategories(
		`SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1 ORDER BY `+categoryOrder, id)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return items, nil
}

// Ancestors returns every category reachable by repeatedly following the
// parent pointer from id, nearest first, excluding the category itself.
// A missing starting id yields an empty result, not an error: callers
// cannot distinguish "no ancestors" from "no such category" here.
// One row fetch per level of depth.
func (s *CategoryStore) Ancestors(id uuid.UUID) ([]models.Category, error) {
	current, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	var ancestors []models.Category
	for current != nil && current.ParentID != nil {
		parent, err := s.FindByID(*current.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		ancestors = append(ancestors, *parent)
		current = parent
	}
	return ancestors, nil
}

// Descendants returns every category reachable by repeatedly expanding
// children from id, excluding the category itself. Breadth-first: an
// explicit queue is seeded with the direct children, each dequeued node is
// recorded and its own children enqueued. One children query per visited
// node, so O(subtree size) row fetches. A missing starting id yields an
// empty result, not an error.
func (s *CategoryStore) Descendants(id uuid.UUID) ([]models.Category, error) {
	start, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, nil
	}

	queue, err := s.Children(id)
	if err != nil {
		return nil, err
	}

	var descendants []models.Category
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		descendants = append(descendants, current)

		kids, err := s.Children(current.ID)
		if err != nil {
			return nil, err
		}
		queue = append(queue, kids...)
	}
	return descendants, nil
}

// Roots returns all categories with no parent, in canonical order.
func (s *CategoryStore) Roots() ([]models.Category, error) {
	items, err := s.queryCategories(
		`SELECT ` + categoryColumns + ` FROM categories WHERE parent_id IS NULL ORDER BY ` + categoryOrder)
	if err != nil {
		return nil, fmt.Errorf("list roots: %w", err)
	}
	return items, nil
}

// Leaves returns all categories with no children, in canonical order.
func (s *CategoryStore) Leaves() ([]models.Category, error) {
	items, err := s.queryCategories(
		`SELECT ` + categoryColumns + ` FROM categories c
		 WHERE NOT EXISTS (SELECT 1 FROM categories k WHERE k.parent_id = c.id)
		 ORDER BY ` + categoryOrder)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return items, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"taxopress/internal/models"
	"taxopress/internal/slug"
)

// CategoryStore manages taxonomy nodes in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, parent_id, name, slug, description, external_type, external_id, priority, created_at, updated_at`

// categoryOrder is the canonical listing order: priority ascending with
// nulls last, ties broken by name.
const categoryOrder = `priority ASC NULLS LAST, name ASC`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Description,
		&c.ExternalType, &c.ExternalID, &c.Priority, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// queryCategories runs a query expected to return category rows and scans
// them into a slice.
func (s *CategoryStore) queryCategories(query string, args ...any) ([]models.Category, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// List returns all categories in the canonical order.
func (s *CategoryStore) List() ([]models.Category, error) {
	items, err := s.queryCategories(
		`SELECT ` + categoryColumns + ` FROM categories ORDER BY ` + categoryOrder)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. An empty slug is derived
// from the name before persisting. A taken slug yields ErrDuplicateSlug;
// a parent that does not exist yields ErrParentNotFound.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	if c.Slug == "" && c.Name != "" {
		c.Slug = slug.Generate(c.Name)
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (parent_id, name, slug, description, external_type, external_id, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+categoryColumns,
		c.ParentID, c.Name, c.Slug, c.Description, c.ExternalType, c.ExternalID, c.Priority,
	)
	result, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if isForeignKeyViolation(err) {
		return nil, ErrParentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category and returns the persisted row with
// its database-stamped timestamps. The slug derivation rule applies on
// every save: clearing the slug and saving regenerates it from the current
// name. A parent change is rejected with ErrCycle if the new parent is the
// category itself or one of its descendants, and with ErrParentNotFound if
// the new parent does not exist. Returns nil when id matches no row.
func (s *CategoryStore) Update(c *models.Category) (*models.Category, error) {
	if c.Slug == "" && c.Name != "" {
		c.Slug = slug.Generate(c.Name)
	}

	if c.ParentID != nil {
		cyclic, err := s.wouldCycle(c.ID, *c.ParentID)
		if err != nil {
			return nil, err
		}
		if cyclic {
			return nil, ErrCycle
		}
	}

	row := s.db.QueryRow(`
		UPDATE categories SET
			parent_id = $1, name = $2, slug = $3, description = $4,
			external_type = $5, external_id = $6, priority = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING `+categoryColumns,
		c.ParentID, c.Name, c.Slug, c.Description, c.ExternalType, c.ExternalID, c.Priority, c.ID)
	result, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if isForeignKeyViolation(err) {
		return nil, ErrParentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// wouldCycle walks upward from newParent following parent pointers and
// reports whether id is encountered. Guards re-parenting a category under
// its own descendant. A newParent that does not exist at all yields
// ErrParentNotFound; a parent link vanishing mid-walk just ends the walk.
func (s *CategoryStore) wouldCycle(id, newParent uuid.UUID) (bool, error) {
	current := &newParent
	first := true
	for current != nil {
		if *current == id {
			return true, nil
		}
		var parent *uuid.UUID
		err := s.db.QueryRow(`SELECT parent_id FROM categories WHERE id = $1`, *current).Scan(&parent)
		if err == sql.ErrNoRows {
			if first {
				return false, ErrParentNotFound
			}
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("cycle check: %w", err)
		}
		current = parent
		first = false
	}
	return false, nil
}

// Delete removes a category by ID. The database cascades the delete to the
// entire subtree, plus any translations and relations of the removed nodes.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Tree returns categories as a nested tree structure.
func (s *CategoryStore) Tree() ([]models.Category, error) {
	flat, err := s.List()
	if err != nil {
		return nil, err
	}
	return buildTree(flat, nil, 0), nil
}

// buildTree recursively builds a tree from a flat list.
func buildTree(flat []models.Category, parentID *uuid.UUID, depth int) []models.Category {
	var result []models.Category
	for _, c := range flat {
		if ptrEqual(c.ParentID, parentID) {
			c.Depth = depth
			c.Children = buildTree(flat, &c.ID, depth+1)
			result = append(result, c)
		}
	}
	return result
}

// ptrEqual compares two *uuid.UUID for equality (both nil or same value).
func ptrEqual(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// FlatTree returns categories as a flat list ordered for display, with
// Depth set for indentation. Useful for <select> dropdowns in host admin.
func (s *CategoryStore) FlatTree() ([]models.Category, error) {
	tree, err := s.Tree()
	if err != nil {
		return nil, err
	}
	var result []models.Category
	flattenTree(tree, &result)
	return result, nil
}

// flattenTree walks a category tree depth-first, appending to result.
func flattenTree(cats []models.Category, result *[]models.Category) {
	for _, c := range cats {
		*result = append(*result, c)
		if len(c.Children) > 0 {
			flattenTree(c.Children, result)
		}
	}
}

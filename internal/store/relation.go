// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"taxopress/internal/models"
)

// RelationStore manages the many-to-many attachment of categories to
// external records. Relation rows die with their category (ON DELETE
// CASCADE) but outlive the external record they point at.
type RelationStore struct {
	db *sql.DB
}

// NewRelationStore returns a new RelationStore.
func NewRelationStore(db *sql.DB) *RelationStore {
	return &RelationStore{db: db}
}

const relationColumns = `id, category_id, external_type, external_id, created_at`

// scanRelation scans a row into a CategoryRelation struct.
func scanRelation(scanner interface{ Scan(...any) error }) (*models.CategoryRelation, error) {
	var rel models.CategoryRelation
	err := scanner.Scan(&rel.ID, &rel.CategoryID, &rel.ExternalType, &rel.ExternalID, &rel.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// Create attaches a category to an external record and returns the new row.
// Duplicate attachments are allowed.
func (s *RelationStore) Create(categoryID uuid.UUID, externalType string, externalID int64) (*models.CategoryRelation, error) {
	row := s.db.QueryRow(`
		INSERT INTO category_relations (category_id, external_type, external_id)
		VALUES ($1, $2, $3)
		RETURNING `+relationColumns,
		categoryID, externalType, externalID,
	)
	rel, err := scanRelation(row)
	if err != nil {
		return nil, fmt.Errorf("create relation: %w", err)
	}
	return rel, nil
}

// FindByID retrieves a relation by ID. Returns nil if not found.
func (s *RelationStore) FindByID(id uuid.UUID) (*models.CategoryRelation, error) {
	row := s.db.QueryRow(`SELECT `+relationColumns+` FROM category_relations WHERE id = $1`, id)
	rel, err := scanRelation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find relation by id: %w", err)
	}
	return rel, nil
}

// Delete removes a single relation row. The category and the external
// record are untouched.
func (s *RelationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM category_relations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete relation: %w", err)
	}
	return nil
}

// ListForRecord returns all relations attached to one external record.
func (s *RelationStore) ListForRecord(externalType string, externalID int64) ([]models.CategoryRelation, error) {
	rows, err := s.db.Query(`
		SELECT `+relationColumns+` FROM category_relations
		WHERE external_type = $1 AND external_id = $2
		ORDER BY created_at
	`, externalType, externalID)
	if err != nil {
		return nil, fmt.Errorf("list relations for record: %w", err)
	}
	defer rows.Close()

	var items []models.CategoryRelation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		items = append(items, *rel)
	}
	return items, rows.Err()
}

// ListForCategory returns all relations of one category.
func (s *RelationStore) ListForCategory(categoryID uuid.UUID) ([]models.CategoryRelation, error) {
	rows, err := s.db.Query(`
		SELECT `+relationColumns+` FROM category_relations
		WHERE category_id = $1 ORDER BY created_at
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list relations for category: %w", err)
	}
	defer rows.Close()

	var items []models.CategoryRelation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		items = append(items, *rel)
	}
	return items, rows.Err()
}

// CategoriesForRecord returns the categories attached to one external
// record through relations, in canonical listing order.
func (s *RelationStore) CategoriesForRecord(externalType string, externalID int64) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT c.id, c.parent_id, c.name, c.slug, c.description,
		       c.external_type, c.external_id, c.priority, c.created_at, c.updated_at
		FROM categories c
		JOIN category_relations r ON r.category_id = c.id
		WHERE r.external_type = $1 AND r.external_id = $2
		ORDER BY c.priority ASC NULLS LAST, c.name ASC
	`, externalType, externalID)
	if err != nil {
		return nil, fmt.Errorf("categories for record: %w", err)
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

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

// TranslationStore manages per-language category names and descriptions.
// Language codes are always explicit parameters; there is no ambient
// "current language".
type TranslationStore struct {
	db *sql.DB
}

// NewTranslationStore returns a new TranslationStore.
func NewTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db}
}

const translationColumns = `category_id, language, name, description, created_at, updated_at`

// scanTranslation scans a row into a CategoryTranslation struct.
func scanTranslation(scanner interface{ Scan(...any) error }) (*models.CategoryTranslation, error) {
	var tr models.CategoryTranslation
	err := scanner.Scan(
		&tr.CategoryID, &tr.Language, &tr.Name, &tr.Description,
		&tr.CreatedAt, &tr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

// Upsert inserts or replaces the translation for one (category, language)
// pair and returns the stored row.
func (s *TranslationStore) Upsert(categoryID uuid.UUID, language, name, description string) (*models.CategoryTranslation, error) {
	row := s.db.QueryRow(`
		INSERT INTO category_translations (category_id, language, name, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (category_id, language) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, updated_at = NOW()
		RETURNING `+translationColumns,
		categoryID, language, name, description,
	)
	tr, err := scanTranslation(row)
	if err != nil {
		return nil, fmt.Errorf("upsert translation: %w", err)
	}
	return tr, nil
}

// Get retrieves the translation for one (category, language) pair.
// Returns nil if no such translation exists.
func (s *TranslationStore) Get(categoryID uuid.UUID, language string) (*models.CategoryTranslation, error) {
	row := s.db.QueryRow(`
		SELECT `+translationColumns+` FROM category_translations
		WHERE category_id = $1 AND language = $2
	`, categoryID, language)
	tr, err := scanTranslation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get translation: %w", err)
	}
	return tr, nil
}

// Resolve returns the translation for language, falling back to the
// fallback language when the requested one is missing. Returns nil when
// neither exists. The fallback is explicit; reading components decide it.
func (s *TranslationStore) Resolve(categoryID uuid.UUID, language, fallback string) (*models.CategoryTranslation, error) {
	tr, err := s.Get(categoryID, language)
	if err != nil || tr != nil {
		return tr, err
	}
	if fallback == "" || fallback == language {
		return nil, nil
	}
	return s.Get(categoryID, fallback)
}

// List returns all translations of a category ordered by language code.
func (s *TranslationStore) List(categoryID uuid.UUID) ([]models.CategoryTranslation, error) {
	rows, err := s.db.Query(`
		SELECT `+translationColumns+` FROM category_translations
		WHERE category_id = $1 ORDER BY language
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	var items []models.CategoryTranslation
	for rows.Next() {
		tr, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		items = append(items, *tr)
	}
	return items, rows.Err()
}

// Delete removes the translation for one (category, language) pair.
func (s *TranslationStore) Delete(categoryID uuid.UUID, language string) error {
	_, err := s.db.Exec(`
		DELETE FROM category_translations WHERE category_id = $1 AND language = $2
	`, categoryID, language)
	if err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	return nil
}

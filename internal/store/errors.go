// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateSlug is returned when a create or update would violate
	// a slug uniqueness constraint.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrCycle is returned when a re-parent would make a category its own
	// ancestor.
	ErrCycle = errors.New("re-parenting would create a cycle")

	// ErrParentNotFound is returned when a create or update names a parent
	// that does not exist.
	ErrParentNotFound = errors.New("parent category not found")
)

// PostgreSQL error codes for constraint breaches.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign_key_violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

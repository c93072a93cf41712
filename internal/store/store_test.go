// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"taxopress/internal/database"
	"taxopress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Overridable through the standard POSTGRES_* environment variables.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "taxopress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "taxopress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state so other packages can run their own migrations.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanCategories removes test categories by slug. Cascading deletes take
// care of descendants, translations, and relations. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", s)
	}
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// suffix returns a short random string to keep test slugs unique.
func suffix() string {
	return uuid.NewString()[:8]
}

// mustCreate inserts a category and fails the test on error.
func mustCreate(t *testing.T, s *CategoryStore, c *models.Category) *models.Category {
	t.Helper()
	created, err := s.Create(c)
	if err != nil {
		t.Fatalf("Create %q: %v", c.Slug, err)
	}
	return created
}

// containsID reports whether items includes a category with the given id.
func containsID(items []models.Category, id uuid.UUID) bool {
	for _, c := range items {
		if c.ID == id {
			return true
		}
	}
	return false
}

// chainFixture creates root → child → grandchild and registers cleanup.
// Returns the three categories.
func chainFixture(t *testing.T, db *sql.DB, s *CategoryStore) (root, child, grandchild *models.Category) {
	t.Helper()

	sfx := suffix()
	rootSlug := "fixture-root-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, rootSlug) })

	root = mustCreate(t, s, &models.Category{Name: "Fixture Root", Slug: rootSlug})
	child = mustCreate(t, s, &models.Category{
		Name: "Fixture Child", Slug: "fixture-child-" + sfx, ParentID: &root.ID,
	})
	grandchild = mustCreate(t, s, &models.Category{
		Name: "Fixture Grandchild", Slug: "fixture-grandchild-" + sfx, ParentID: &child.ID,
	})
	return root, child, grandchild
}

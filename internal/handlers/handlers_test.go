package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"taxopress/internal/contentref"
	"taxopress/internal/database"
	"taxopress/internal/models"
	"taxopress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("POSTGRES_USER", "taxopress"),
		envOr("POSTGRES_PASSWORD", "changeme"),
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		envOr("POSTGRES_DB", "taxopress"),
	)
}

var migrateOnce sync.Once

// testServer builds a router carrying the taxonomy handlers without the
// auth middleware, so endpoint behavior can be exercised against the
// test database alone. Skips when no database is reachable.
func testServer(t *testing.T) (chi.Router, *sql.DB) {
	t.Helper()

	db, err := database.Connect(testDSN())
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrateOnce.Do(func() {
		if err := database.Migrate(db); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	})

	refs := contentref.NewRegistry()
	refs.Register("post", contentref.StubLoader("post"))

	taxonomy := NewTaxonomy(
		store.NewCategoryStore(db),
		store.NewTranslationStore(db),
		store.NewRelationStore(db),
		refs,
		nil, // no tree cache in handler tests
	)

	r := chi.NewRouter()
	r.Get("/api/categories", taxonomy.CategoriesList)
	r.Get("/api/categories/tree", taxonomy.CategoriesTree)
	r.Get("/api/categories/roots", taxonomy.CategoriesRoots)
	r.Get("/api/categories/leaves", taxonomy.CategoriesLeaves)
	r.Get("/api/categories/{id}", taxonomy.CategoryGet)
	r.Get("/api/categories/{id}/ancestors", taxonomy.CategoryAncestors)
	r.Get("/api/categories/{id}/descendants", taxonomy.CategoryDescendants)
	r.Get("/api/categories/{id}/children", taxonomy.CategoryChildren)
	r.Get("/api/categories/{id}/translations", taxonomy.TranslationsList)
	r.Get("/api/categories/{id}/translations/{lang}", taxonomy.TranslationGet)
	r.Get("/api/categories/{id}/relations", taxonomy.CategoryRelations)
	r.Get("/api/records/{type}/{recordID}/categories", taxonomy.RecordCategories)
	r.Post("/api/categories", taxonomy.CategoryCreate)
	r.Put("/api/categories/{id}", taxonomy.CategoryUpdate)
	r.Delete("/api/categories/{id}", taxonomy.CategoryDelete)
	r.Put("/api/categories/{id}/translations/{lang}", taxonomy.TranslationUpsert)
	r.Delete("/api/categories/{id}/translations/{lang}", taxonomy.TranslationDelete)
	r.Post("/api/relations", taxonomy.RelationCreate)
	r.Delete("/api/relations/{id}", taxonomy.RelationDelete)

	return r, db
}

// doRequest performs an in-memory request against the test router.
// body may be nil, a raw string, or any JSON-marshalable value.
func doRequest(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func testSuffix() string {
	return uuid.NewString()[:8]
}

func cleanSlugs(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		if _, err := db.Exec(`DELETE FROM categories WHERE slug = $1`, s); err != nil {
			t.Errorf("cleanup %s: %v", s, err)
		}
	}
}

// createCategory creates a category through the API and fails the test on
// any non-201 response.
func createCategory(t *testing.T, r chi.Router, body map[string]any) models.Category {
	t.Helper()
	rec := doRequest(t, r, http.MethodPost, "/api/categories", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: status %d body %s", rec.Code, rec.Body.String())
	}
	var c models.Category
	decodeBody(t, rec, &c)
	return c
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"math/rand"
	"testing"

	"taxopress/internal/models"
)

// testRecordID returns a random external record id so parallel test runs
// don't collide on the shared (type, id) space.
func testRecordID() int64 {
	return rand.Int63n(1_000_000_000) + 1_000_000
}

func TestRelationCreateAndFind(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	relations := NewRelationStore(db)

	slugValue := "rel-basic-" + suffix()
	t.Cleanup(func() { cleanCategories(t, db, slugValue) })
	category := mustCreate(t, categories, &models.Category{Name: "Related", Slug: slugValue})

	recordID := testRecordID()
	rel, err := relations.Create(category.ID, "post", recordID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rel.CategoryID != category.ID || rel.ExternalType != "post" || rel.ExternalID != recordID {
		t.Errorf("unexpected relation: %+v", rel)
	}

	found, err := relations.FindByID(rel.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected relation, got nil")
	}
}

func TestRelationDuplicatesAllowed(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	relations := NewRelationStore(db)

	slugValue := "rel-dup-" + suffix()
	t.Cleanup(func() { cleanCategories(t, db, slugValue) })
	category := mustCreate(t, categories, &models.Category{Name: "Twice", Slug: slugValue})

	recordID := testRecordID()
	if _, err := relations.Create(category.ID, "post", recordID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// No uniqueness constraint: the same attachment may exist twice.
	if _, err := relations.Create(category.ID, "post", recordID); err != nil {
		t.Fatalf("Create (duplicate): %v", err)
	}

	items, err := relations.ListForRecord("post", recordID)
	if err != nil {
		t.Fatalf("ListForRecord: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 relation rows, got %d", len(items))
	}
}

func TestRelationDeleteLeavesCategory(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	relations := NewRelationStore(db)

	slugValue := "rel-detach-" + suffix()
	t.Cleanup(func() { cleanCategories(t, db, slugValue) })
	category := mustCreate(t, categories, &models.Category{Name: "Detach", Slug: slugValue})

	rel, err := relations.Create(category.ID, "page", testRecordID())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := relations.Delete(rel.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, _ := relations.FindByID(rel.ID); got != nil {
		t.Error("expected relation to be gone")
	}
	if got, _ := categories.FindByID(category.ID); got == nil {
		t.Error("deleting a relation must not delete the category")
	}
}

func TestRelationCascadeOnCategoryDelete(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	relations := NewRelationStore(db)

	slugValue := "rel-cascade-" + suffix()
	t.Cleanup(func() { cleanCategories(t, db, slugValue) })
	category := mustCreate(t, categories, &models.Category{Name: "Cascade Rel", Slug: slugValue})

	rel, err := relations.Create(category.ID, "post", testRecordID())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := categories.Delete(category.ID); err != nil {
		t.Fatalf("Delete category: %v", err)
	}

	if got, _ := relations.FindByID(rel.ID); got != nil {
		t.Error("expected relation to cascade with its category")
	}
}

func TestCategoriesForRecord(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	relations := NewRelationStore(db)

	sfx := suffix()
	aSlug := "rel-cat-a-" + sfx
	bSlug := "rel-cat-b-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, aSlug, bSlug) })

	a := mustCreate(t, categories, &models.Category{Name: "Tag A", Slug: aSlug})
	b := mustCreate(t, categories, &models.Category{Name: "Tag B", Slug: bSlug})

	recordID := testRecordID()
	if _, err := relations.Create(a.ID, "post", recordID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Attach twice — CategoriesForRecord must still report B once.
	if _, err := relations.Create(b.ID, "post", recordID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := relations.Create(b.ID, "post", recordID); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, err := relations.CategoriesForRecord("post", recordID)
	if err != nil {
		t.Fatalf("CategoriesForRecord: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 distinct categories, got %d", len(items))
	}
	if !containsID(items, a.ID) || !containsID(items, b.ID) {
		t.Error("expected both attached categories")
	}
}

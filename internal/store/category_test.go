// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"taxopress/internal/models"
)

func TestCategoryStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	slugValue := "test-create-" + suffix()
	t.Cleanup(func() { cleanCategories(t, db, slugValue) })

	created := mustCreate(t, s, &models.Category{
		Name:        "Test Create",
		Slug:        slugValue,
		Description: "A test category",
	})

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.ParentID != nil {
		t.Error("expected nil parent for a root")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be stamped on insert")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected category, got nil")
	}
	if found.Slug != slugValue {
		t.Errorf("slug: got %q, want %q", found.Slug, slugValue)
	}
}

func TestCategoryStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	found, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected nil for a missing category")
	}
}

func TestCategoryStoreSlugDerivation(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	sfx := suffix()
	name := "Auto Slug Category " + sfx
	want := "auto-slug-category-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, want) })

	created := mustCreate(t, s, &models.Category{Name: name})

	if created.Slug != want {
		t.Errorf("slug: got %q, want %q", created.Slug, want)
	}
}

func TestCategoryStoreDuplicateSlug(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	slugValue := "test-dup-" + suffix()
	t.Cleanup(func() { cleanCategories(t, db, slugValue) })

	mustCreate(t, s, &models.Category{Name: "First", Slug: slugValue})

	// Second root with the same slug must fail.
	_, err := s.Create(&models.Category{Name: "Second", Slug: slugValue})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestCategoryStoreDuplicateSlugUnderParent(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	sfx := suffix()
	parentSlug := "test-dup-parent-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, parentSlug) })

	parent := mustCreate(t, s, &models.Category{Name: "Parent", Slug: parentSlug})
	mustCreate(t, s, &models.Category{Name: "Kid", Slug: "kid-" + sfx, ParentID: &parent.ID})

	_, err := s.Create(&models.Category{Name: "Kid Again", Slug: "kid-" + sfx, ParentID: &parent.ID})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestCategoryStoreSlugUniqueAcrossParents(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	sfx := suffix()
	aSlug := "parent-a-" + sfx
	bSlug := "parent-b-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, aSlug, bSlug, "shared-"+sfx) })

	a := mustCreate(t, s, &models.Category{Name: "Parent A", Slug: aSlug})
	b := mustCreate(t, s, &models.Category{Name: "Parent B", Slug: bSlug})

	// Slug uniqueness is global, not just per parent: the same slug under
	// a different parent is rejected too.
	mustCreate(t, s, &models.Category{Name: "Shared", Slug: "shared-" + sfx, ParentID: &a.ID})
	_, err := s.Create(&models.Category{Name: "Shared", Slug: "shared-" + sfx, ParentID: &b.ID})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug for reused slug under another parent, got %v", err)
	}
}

func TestCategoryStoreUpdateRegeneratesSlug(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	sfx := suffix()
	oldSlug := "before-rename-" + sfx
	newSlug := "renamed-category-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, oldSlug, newSlug) })

	created := mustCreate(t, s, &models.Category{Name: "Before Rename", Slug: oldSlug})

	// Clearing the slug and saving regenerates it from the current name.
	created.Name = "Renamed Category " + sfx
	created.Slug = ""
	updated, err := s.Update(created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated row")
	}
	if updated.Slug != "renamed-category-"+sfx {
		t.Errorf("slug: got %q, want %q", updated.Slug, "renamed-category-"+sfx)
	}
	// The returned row carries the database timestamps.
	if updated.CreatedAt.IsZero() || updated.UpdatedAt.IsZero() {
		t.Error("expected timestamps on the updated row")
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("updated_at must not precede created_at")
	}

	found, err := s.FindByID(created.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Slug != updated.Slug {
		t.Errorf("persisted slug: got %q, want %q", found.Slug, updated.Slug)
	}
}

func TestCategoryStoreCycleGuard(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	root, child, grandchild := chainFixture(t, db, s)

	// Re-parenting the root under its own grandchild must be rejected.
	root.ParentID = &grandchild.ID
	if _, err := s.Update(root); !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle for re-parent under descendant, got %v", err)
	}

	// Self-parenting is a one-node cycle.
	child.ParentID = &child.ID
	if _, err := s.Update(child); !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle for self-parent, got %v", err)
	}
}

func TestCategoryStoreParentNotFound(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	sfx := suffix()
	slugValue := "orphan-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, slugValue, "orphan-new-"+sfx) })

	ghost := uuid.New()

	// Creating under a parent that does not exist.
	_, err := s.Create(&models.Category{Name: "Orphan New", Slug: "orphan-new-" + sfx, ParentID: &ghost})
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("Create: expected ErrParentNotFound, got %v", err)
	}

	// Re-parenting onto a parent that does not exist.
	c := mustCreate(t, s, &models.Category{Name: "Orphan", Slug: slugValue})
	c.ParentID = &ghost
	if _, err := s.Update(c); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("Update: expected ErrParentNotFound, got %v", err)
	}
}

func TestCategoryStoreReparentValid(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	sfx := suffix()
	aSlug := "move-a-" + sfx
	bSlug := "move-b-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, aSlug, bSlug) })

	a := mustCreate(t, s, &models.Category{Name: "Move A", Slug: aSlug})
	b := mustCreate(t, s, &models.Category{Name: "Move B", Slug: bSlug})
	kid := mustCreate(t, s, &models.Category{Name: "Move Kid", Slug: "move-kid-" + sfx, ParentID: &a.ID})

	// Moving a leaf to a sibling subtree is fine.
	kid.ParentID = &b.ID
	if _, err := s.Update(kid); err != nil {
		t.Fatalf("Update: %v", err)
	}

	kids, err := s.Children(b.ID)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if !containsID(kids, kid.ID) {
		t.Error("expected kid under its new parent")
	}
}

func TestCategoryStoreDeleteCascades(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	root, child, grandchild := chainFixture(t, db, s)

	// Deleting the middle node removes its whole subtree.
	if err := s.Delete(child.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, _ := s.FindByID(grandchild.ID); got != nil {
		t.Error("expected grandchild to be cascade-deleted")
	}
	if got, _ := s.FindByID(child.ID); got != nil {
		t.Error("expected child to be deleted")
	}
	if got, _ := s.FindByID(root.ID); got == nil {
		t.Error("expected root to survive")
	}
}

func TestCategoryStoreOrdering(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	sfx := suffix()
	parentSlug := "order-parent-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, parentSlug) })

	parent := mustCreate(t, s, &models.Category{Name: "Order Parent", Slug: parentSlug})

	two := 2
	one := 1
	// Created out of order on purpose: priorities {2, null, 1}, names {B, A, C}.
	b := mustCreate(t, s, &models.Category{Name: "B", Slug: "order-b-" + sfx, ParentID: &parent.ID, Priority: &two})
	a := mustCreate(t, s, &models.Category{Name: "A", Slug: "order-a-" + sfx, ParentID: &parent.ID})
	c := mustCreate(t, s, &models.Category{Name: "C", Slug: "order-c-" + sfx, ParentID: &parent.ID, Priority: &one})

	kids, err := s.Children(parent.ID)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(kids) != 3 {
		t.Fatalf("expected 3 children, got %d", len(kids))
	}

	// Priority ascending with nulls last: C(1), B(2), A(null).
	want := []uuid.UUID{c.ID, b.ID, a.ID}
	for i, id := range want {
		if kids[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, kids[i].Name, []string{"C", "B", "A"}[i])
		}
	}
}

func TestCategoryStoreOrderingTieBreaksByName(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	sfx := suffix()
	parentSlug := "tie-parent-" + sfx
	t.Cleanup(func() { cleanCategories(t, db, parentSlug) })

	parent := mustCreate(t, s, &models.Category{Name: "Tie Parent", Slug: parentSlug})

	one := 1
	z := mustCreate(t, s, &models.Category{Name: "Zebra", Slug: "tie-z-" + sfx, ParentID: &parent.ID, Priority: &one})
	m := mustCreate(t, s, &models.Category{Name: "Mango", Slug: "tie-m-" + sfx, ParentID: &parent.ID, Priority: &one})

	kids, err := s.Children(parent.ID)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(kids) != 2 || kids[0].ID != m.ID || kids[1].ID != z.ID {
		t.Errorf("expected name ascending within equal priority, got %v then %v",
			kids[0].Name, kids[1].Name)
	}
}

func TestCategoryStoreTree(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	root, child, grandchild := chainFixture(t, db, s)

	tree, err := s.Tree()
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}

	var fixtureRoot *models.Category
	for i := range tree {
		if tree[i].ID == root.ID {
			fixtureRoot = &tree[i]
			break
		}
	}
	if fixtureRoot == nil {
		t.Fatal("expected fixture root at the top level of the tree")
	}
	if fixtureRoot.Depth != 0 {
		t.Errorf("root depth: got %d, want 0", fixtureRoot.Depth)
	}
	if len(fixtureRoot.Children) != 1 || fixtureRoot.Children[0].ID != child.ID {
		t.Fatal("expected child nested under root")
	}
	nested := fixtureRoot.Children[0]
	if nested.Depth != 1 {
		t.Errorf("child depth: got %d, want 1", nested.Depth)
	}
	if len(nested.Children) != 1 || nested.Children[0].ID != grandchild.ID {
		t.Error("expected grandchild nested under child")
	}
}

func TestCategoryStoreFlatTree(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	root, child, _ := chainFixture(t, db, s)

	flat, err := s.FlatTree()
	if err != nil {
		t.Fatalf("FlatTree: %v", err)
	}

	// The child must appear directly after its root with depth 1.
	for i, c := range flat {
		if c.ID == root.ID {
			if i+1 >= len(flat) || flat[i+1].ID != child.ID {
				t.Error("expected child immediately after root in flat tree")
			} else if flat[i+1].Depth != 1 {
				t.Errorf("child depth: got %d, want 1", flat[i+1].Depth)
			}
			return
		}
	}
	t.Fatal("fixture root not found in flat tree")
}

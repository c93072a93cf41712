// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"taxopress/internal/cache"
	"taxopress/internal/contentref"
	"taxopress/internal/models"
	"taxopress/internal/store"
)

// Taxonomy groups the category, translation, and relation HTTP handlers
// and their dependencies.
type Taxonomy struct {
	categories   *store.CategoryStore
	translations *store.TranslationStore
	relations    *store.RelationStore
	refs         *contentref.Registry
	treeCache    *cache.TreeCache
}

// NewTaxonomy creates a new Taxonomy handler group with the given
// dependencies. treeCache may be nil when Valkey is not configured.
func NewTaxonomy(categories *store.CategoryStore, translations *store.TranslationStore, relations *store.RelationStore, refs *contentref.Registry, treeCache *cache.TreeCache) *Taxonomy {
	return &Taxonomy{
		categories:   categories,
		translations: translations,
		relations:    relations,
		refs:         refs,
		treeCache:    treeCache,
	}
}

// categoryRequest is the JSON body for category create and update.
type categoryRequest struct {
	ParentID     *uuid.UUID `json:"parent_id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	ExternalType *string    `json:"external_type"`
	ExternalID   *int64     `json:"external_id"`
	Priority     *int       `json:"priority"`
}

// categoryID parses the {id} URL parameter. Returns uuid.Nil and false for
// a malformed id.
func categoryID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// nonNull returns its argument, substituting an empty slice for nil so
// JSON listings encode as [] rather than null.
func nonNull(items []models.Category) []models.Category {
	if items == nil {
		return []models.Category{}
	}
	return items
}

// CategoriesList returns all categories in canonical order.
func (t *Taxonomy) CategoriesList(w http.ResponseWriter, r *http.Request) {
	items, err := t.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	writeJSON(w, http.StatusOK, nonNull(items))
}

// CategoriesTree returns the nested category tree. The rendered JSON is
// cached in Valkey; every mutation invalidates it. The store traversal
// methods themselves never read from this cache.
func (t *Taxonomy) CategoriesTree(w http.ResponseWriter, r *http.Request) {
	if t.treeCache != nil {
		if data, ok := t.treeCache.Get(r.Context()); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(data)
			return
		}
	}

	tree, err := t.categories.Tree()
	if err != nil {
		slog.Error("category tree failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not build tree")
		return
	}

	data, err := json.Marshal(nonNull(tree))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not encode tree")
		return
	}

	if t.treeCache != nil {
		t.treeCache.Set(r.Context(), data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// CategoriesRoots returns all categories with no parent.
func (t *Taxonomy) CategoriesRoots(w http.ResponseWriter, r *http.Request) {
	items, err := t.categories.Roots()
	if err != nil {
		slog.Error("list roots failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list roots")
		return
	}
	writeJSON(w, http.StatusOK, nonNull(items))
}

// CategoriesLeaves returns all categories with no children.
func (t *Taxonomy) CategoriesLeaves(w http.ResponseWriter, r *http.Request) {
	items, err := t.categories.Leaves()
	if err != nil {
		slog.Error("list leaves failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list leaves")
		return
	}
	writeJSON(w, http.StatusOK, nonNull(items))
}

// CategoryGet returns a single category by id, or 404.
func (t *Taxonomy) CategoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	c, err := t.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load category")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CategoryAncestors returns every ancestor of a category, nearest first.
// A nonexistent id yields an empty result, not an error.
func (t *Taxonomy) CategoryAncestors(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeJSON(w, http.StatusOK, []models.Category{})
		return
	}

	items, err := t.categories.Ancestors(id)
	if err != nil {
		slog.Error("ancestors failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load ancestors")
		return
	}
	writeJSON(w, http.StatusOK, nonNull(items))
}

// CategoryDescendants returns every descendant of a category, breadth-first.
// A nonexistent id yields an empty result, not an error.
func (t *Taxonomy) CategoryDescendants(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeJSON(w, http.StatusOK, []models.Category{})
		return
	}

	items, err := t.categories.Descendants(id)
	if err != nil {
		slog.Error("descendants failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load descendants")
		return
	}
	writeJSON(w, http.StatusOK, nonNull(items))
}

// CategoryChildren returns the direct children of a category.
func (t *Taxonomy) CategoryChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeJSON(w, http.StatusOK, []models.Category{})
		return
	}

	items, err := t.categories.Children(id)
	if err != nil {
		slog.Error("children failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load children")
		return
	}
	writeJSON(w, http.StatusOK, nonNull(items))
}

// CategoryCreate handles POST /api/categories.
func (t *Taxonomy) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if msg := validateCategory(req.Name, req.Slug, req.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := t.categories.Create(&models.Category{
		ParentID:     req.ParentID,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		ExternalType: req.ExternalType,
		ExternalID:   req.ExternalID,
		Priority:     req.Priority,
	})
	if errors.Is(err, store.ErrDuplicateSlug) {
		writeError(w, http.StatusConflict, "slug already exists")
		return
	}
	if errors.Is(err, store.ErrParentNotFound) {
		writeError(w, http.StatusBadRequest, "parent category not found")
		return
	}
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create category")
		return
	}

	t.invalidateTree(r)
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate handles PUT /api/categories/{id}. The slug derivation rule
// applies on every save, so sending an empty slug regenerates it from the
// name. Re-parenting under the category's own descendant is rejected.
func (t *Taxonomy) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	existing, err := t.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load category")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateCategory(req.Name, req.Slug, req.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := t.categories.Update(&models.Category{
		ID:           id,
		ParentID:     req.ParentID,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		ExternalType: req.ExternalType,
		ExternalID:   req.ExternalID,
		Priority:     req.Priority,
	})
	if errors.Is(err, store.ErrDuplicateSlug) {
		writeError(w, http.StatusConflict, "slug already exists")
		return
	}
	if errors.Is(err, store.ErrCycle) {
		writeError(w, http.StatusUnprocessableEntity, "re-parenting would create a cycle")
		return
	}
	if errors.Is(err, store.ErrParentNotFound) {
		writeError(w, http.StatusBadRequest, "parent category not found")
		return
	}
	if err != nil {
		slog.Error("update category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not update category")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	t.invalidateTree(r)
	writeJSON(w, http.StatusOK, updated)
}

// CategoryDelete handles DELETE /api/categories/{id}. The database cascades
// the delete to the entire subtree.
func (t *Taxonomy) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	existing, err := t.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load category")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	if err := t.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete category")
		return
	}

	t.invalidateTree(r)
	w.WriteHeader(http.StatusNoContent)
}

// invalidateTree drops the cached tree after a mutation.
func (t *Taxonomy) invalidateTree(r *http.Request) {
	if t.treeCache != nil {
		t.treeCache.Invalidate(r.Context())
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"taxopress/internal/models"
)

// relationRequest is the JSON body for attaching a category to an
// external record.
type relationRequest struct {
	CategoryID   uuid.UUID `json:"category_id"`
	ExternalType string    `json:"external_type"`
	ExternalID   int64     `json:"external_id"`
}

// RelationCreate handles POST /api/relations. The external type tag must
// be registered in the content reference registry.
func (t *Taxonomy) RelationCreate(w http.ResponseWriter, r *http.Request) {
	var req relationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.ExternalType == "" || !t.refs.Known(req.ExternalType) {
		writeError(w, http.StatusBadRequest, "unknown external record type")
		return
	}

	category, err := t.categories.FindByID(req.CategoryID)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load category")
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	rel, err := t.relations.Create(req.CategoryID, req.ExternalType, req.ExternalID)
	if err != nil {
		slog.Error("create relation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create relation")
		return
	}
	writeJSON(w, http.StatusCreated, rel)
}

// RelationDelete handles DELETE /api/relations/{id}. Only the relation row
// is removed; the category and the external record are untouched.
func (t *Taxonomy) RelationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "relation not found")
		return
	}

	rel, err := t.relations.FindByID(id)
	if err != nil {
		slog.Error("find relation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load relation")
		return
	}
	if rel == nil {
		writeError(w, http.StatusNotFound, "relation not found")
		return
	}

	if err := t.relations.Delete(id); err != nil {
		slog.Error("delete relation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete relation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CategoryRelations returns all relations of a category.
func (t *Taxonomy) CategoryRelations(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	items, err := t.relations.ListForCategory(id)
	if err != nil {
		slog.Error("list relations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list relations")
		return
	}
	if items == nil {
		items = []models.CategoryRelation{}
	}
	writeJSON(w, http.StatusOK, items)
}

// RecordCategories handles GET /api/records/{type}/{id}/categories: the
// categories attached to one external record through relations.
func (t *Taxonomy) RecordCategories(w http.ResponseWriter, r *http.Request) {
	externalType := chi.URLParam(r, "type")
	externalID, err := strconv.ParseInt(chi.URLParam(r, "recordID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	items, err := t.relations.CategoriesForRecord(externalType, externalID)
	if err != nil {
		slog.Error("categories for record failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	writeJSON(w, http.StatusOK, nonNull(items))
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taxopress/internal/models"
)

// translationRequest is the JSON body for a translation upsert.
type translationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TranslationsList returns all translations of a category.
func (t *Taxonomy) TranslationsList(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	items, err := t.translations.List(id)
	if err != nil {
		slog.Error("list translations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list translations")
		return
	}
	if items == nil {
		items = []models.CategoryTranslation{}
	}
	writeJSON(w, http.StatusOK, items)
}

// TranslationGet returns the translation for one language. The optional
// ?fallback=xx query parameter names an explicit fallback language used
// when the requested one is missing.
func (t *Taxonomy) TranslationGet(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	language := chi.URLParam(r, "lang")
	fallback := r.URL.Query().Get("fallback")

	tr, err := t.translations.Resolve(id, language, fallback)
	if err != nil {
		slog.Error("resolve translation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load translation")
		return
	}
	if tr == nil {
		writeError(w, http.StatusNotFound, "translation not found")
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

// TranslationUpsert handles PUT /api/categories/{id}/translations/{lang}.
func (t *Taxonomy) TranslationUpsert(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	language := chi.URLParam(r, "lang")

	category, err := t.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load category")
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req translationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateTranslation(language, req.Name, req.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tr, err := t.translations.Upsert(id, language, req.Name, req.Description)
	if err != nil {
		slog.Error("upsert translation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save translation")
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

// TranslationDelete handles DELETE /api/categories/{id}/translations/{lang}.
func (t *Taxonomy) TranslationDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	language := chi.URLParam(r, "lang")

	if err := t.translations.Delete(id, language); err != nil {
		slog.Error("delete translation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete translation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

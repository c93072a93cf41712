// Package router sets up all HTTP routes and middleware chains for the
// taxonomy server. It organizes routes into public read and authenticated
// mutation groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taxopress/internal/handlers"
	"taxopress/internal/middleware"
	"taxopress/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, taxonomy *handlers.Taxonomy, auth *handlers.Auth) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Auth endpoints — rate-limited to slow down credential guessing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.Route("/admin", func(r chi.Router) {
		r.Use(loginLimiter.Middleware)

		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Public reads — the query surface consumed by listing UIs and
		// external record editors.
		r.Get("/categories", taxonomy.CategoriesList)
		r.Get("/categories/tree", taxonomy.CategoriesTree)
		r.Get("/categories/roots", taxonomy.CategoriesRoots)
		r.Get("/categories/leaves", taxonomy.CategoriesLeaves)
		r.Get("/categories/{id}", taxonomy.CategoryGet)
		r.Get("/categories/{id}/ancestors", taxonomy.CategoryAncestors)
		r.Get("/categories/{id}/descendants", taxonomy.CategoryDescendants)
		r.Get("/categories/{id}/children", taxonomy.CategoryChildren)
		r.Get("/categories/{id}/translations", taxonomy.TranslationsList)
		r.Get("/categories/{id}/translations/{lang}", taxonomy.TranslationGet)
		r.Get("/categories/{id}/relations", taxonomy.CategoryRelations)
		r.Get("/records/{type}/{recordID}/categories", taxonomy.RecordCategories)

		// Mutations — require a verified session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Post("/categories", taxonomy.CategoryCreate)
			r.Put("/categories/{id}", taxonomy.CategoryUpdate)

			// Deleting a category takes its whole subtree with it, so
			// only admins may do it.
			r.With(middleware.RequireAdmin).Delete("/categories/{id}", taxonomy.CategoryDelete)

			r.Put("/categories/{id}/translations/{lang}", taxonomy.TranslationUpsert)
			r.Delete("/categories/{id}/translations/{lang}", taxonomy.TranslationDelete)

			r.Post("/relations", taxonomy.RelationCreate)
			r.Delete("/relations/{id}", taxonomy.RelationDelete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

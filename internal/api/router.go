package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/othala/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced on the
// authoring surface; the public read endpoints are never auth-gated.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// contentRoot is used to resolve the media directory.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, sseHandler http.Handler, contentRoot string) chi.Router {
	h := NewHandler(svc)
	mh := NewMediaHandler(contentRoot)

	r := chi.NewRouter()

	// Public read surface: derived views and rendered posts.
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)
	r.Get("/archive", h.Archive)
	r.Get("/tags", h.ListTags)
	r.Get("/tags/{slug}", h.GetTag)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{slug}", h.GetCategory)

	// Authoring surface.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))

		// Documents CRUD.
		r.Get("/documents", h.ListDocuments)
		r.Post("/documents", h.CreateDocument)
		r.Get("/documents/*", h.GetDocument)
		r.Put("/documents/*", h.UpdateDocument)
		r.Delete("/documents/*", h.DeleteDocument)

		// Search.
		r.Get("/search", h.Search)

		// Media upload (auth-protected).
		r.Post("/media", mh.Upload)

		// SSE endpoint (protected by same auth middleware).
		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}

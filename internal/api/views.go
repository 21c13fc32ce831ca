package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/othala/internal/aggregate"
	"github.com/starford/othala/internal/apperr"
)

// views rebuilds the derived site views for the current request, writing an
// error response itself on failure.
func (h *Handler) views(w http.ResponseWriter, r *http.Request) (*aggregate.Views, bool) {
	v, err := h.svc.Views(r.Context())
	if err != nil {
		slog.Error("build views failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return nil, false
	}
	return v, true
}

// ListPosts handles GET /api/posts.
//
//	@Summary		Chronological post sequence, newest first, with neighbour links
//	@Tags			posts
//	@Produce		json
//	@Success		200	{object}	PostListResponse
//	@Router			/posts [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	v, ok := h.views(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"posts": v.Chronology,
	})
}

// GetPost handles GET /api/posts/{slug}.
//
//	@Summary		Get a published post by slug with rendered HTML
//	@Tags			posts
//	@Produce		json
//	@Param			slug	path		string	true	"Post slug"
//	@Success		200		{object}	PostResponse
//	@Failure		404		{object}	errResponse
//	@Router			/posts/{slug} [get]
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	post, err := h.svc.GetPost(r.Context(), s)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get post failed", slog.String("slug", s), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Archive handles GET /api/archive.
//
//	@Summary		Year index, newest year first
//	@Tags			posts
//	@Produce		json
//	@Success		200	{object}	ArchiveResponse
//	@Router			/archive [get]
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	v, ok := h.views(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"years": v.Years,
	})
}

// ListTags handles GET /api/tags.
//
//	@Summary		Tag index keyed by slug
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{object}	GroupListResponse
//	@Router			/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	v, ok := h.views(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"groups": v.Tags,
	})
}

// GetTag handles GET /api/tags/{slug}.
//
//	@Summary		Get one tag group by slug
//	@Tags			taxonomy
//	@Produce		json
//	@Param			slug	path		string	true	"Tag slug"
//	@Success		200		{object}	aggregate.Group
//	@Failure		404		{object}	errResponse
//	@Router			/tags/{slug} [get]
func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	h.getGroup(w, r, func(v *aggregate.Views) map[string]*aggregate.Group { return v.Tags })
}

// ListCategories handles GET /api/categories.
//
//	@Summary		Category index keyed by slug
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{object}	GroupListResponse
//	@Router			/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	v, ok := h.views(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"groups": v.Categories,
	})
}

// GetCategory handles GET /api/categories/{slug}.
//
//	@Summary		Get one category group by slug
//	@Tags			taxonomy
//	@Produce		json
//	@Param			slug	path		string	true	"Category slug"
//	@Success		200		{object}	aggregate.Group
//	@Failure		404		{object}	errResponse
//	@Router			/categories/{slug} [get]
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	h.getGroup(w, r, func(v *aggregate.Views) map[string]*aggregate.Group { return v.Categories })
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request, pick func(*aggregate.Views) map[string]*aggregate.Group) {
	v, ok := h.views(w, r)
	if !ok {
		return
	}
	group, found := pick(v)[chi.URLParam(r, "slug")]
	if !found {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, group)
}
